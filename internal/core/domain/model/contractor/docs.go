// Package contractor contains the read-only view of contractors and their workers
// that the matching core needs: location, coverage radius, activity, verification
// and worker skills.
package contractor
