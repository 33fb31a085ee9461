package servers_test

import (
	"testing"

	"jobmatch/internal/generated/servers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetSwagger_DocumentIsValid(t *testing.T) {
	// Act
	doc, err := servers.GetSwagger()

	// Assert
	require.NoError(t, err)
	require.NoError(t, doc.Validate(t.Context()))
	assert.NotNil(t, doc.Paths.Find("/api/v1/jobs/{jobId}/claim"))
	assert.NotNil(t, doc.Paths.Find("/api/v1/contractors/{contractorId}/nearby-jobs"))
}
