package kernel_test

import (
	"testing"

	"jobmatch/internal/core/domain/model/kernel"
	"jobmatch/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUUID(t *testing.T) {
	id1 := kernel.NewUUID()
	id2 := kernel.NewUUID()

	assert.NoError(t, id1.Validate())
	assert.NotEqual(t, uuid.Nil.String(), id1.String())
	assert.False(t, id1.IsEqual(id2))
}

func TestUUIDFromString(t *testing.T) {
	const valid = "550e8400-e29b-41d4-a716-446655440000"

	tests := []struct {
		name    string
		input   string
		wantErr error
	}{
		{name: "canonical", input: valid},
		{name: "braced", input: "{" + valid + "}"},
		{name: "urn", input: "urn:uuid:" + valid},
		{name: "empty", input: "", wantErr: errs.ErrValueIsInvalid},
		{name: "garbage", input: "not-a-uuid", wantErr: errs.ErrValueIsInvalid},
		{name: "nil uuid", input: uuid.Nil.String(), wantErr: errs.ErrValueIsRequired},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, err := kernel.UUIDFromString(tt.input)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, valid, id.String())
		})
	}
}

func TestUUIDFromBytes(t *testing.T) {
	g := uuid.New()

	id, err := kernel.UUIDFromBytes(g[:])
	require.NoError(t, err)
	assert.Equal(t, g, id.Bytes())

	_, err = kernel.UUIDFromBytes([]byte{1, 2, 3})
	assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

func TestUUIDFromGoogle(t *testing.T) {
	_, err := kernel.UUIDFromGoogle(uuid.Nil)
	assert.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
}

func TestMustUUIDFromString(t *testing.T) {
	assert.Panics(t, func() { kernel.MustUUIDFromString("bad") })
	assert.NotPanics(t, func() { kernel.MustUUIDFromString("550e8400-e29b-41d4-a716-446655440000") })
}

func TestUUID_Less(t *testing.T) {
	a := kernel.MustUUIDFromString("00000000-0000-0000-0000-000000000001")
	b := kernel.MustUUIDFromString("00000000-0000-0000-0000-000000000002")

	assert.True(t, a.Less(b))
	assert.False(t, b.Less(a))
	assert.False(t, a.Less(a))
}

func TestUUID_Validate(t *testing.T) {
	var zero kernel.UUID
	assert.Equal(t, kernel.ErrUUIDIsNotConstructed, zero.Validate())
	assert.NoError(t, kernel.NewUUID().Validate())
}
