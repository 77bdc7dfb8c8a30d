package investor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRequiresName(t *testing.T) {
	_, err := New("")
	require.Error(t, err)
}

func TestNewSetsIdentityAndTimestamps(t *testing.T) {
	inv, err := New("Sequoia Capital",
		WithType("VC"),
		WithGlobalHQ("Menlo Park"),
		WithStageOfInvestment("Seed"),
		WithWebsite("https://sequoiacap.com"),
	)
	require.NoError(t, err)

	assert.True(t, ValidID(inv.ID()))
	assert.Equal(t, "Sequoia Capital", inv.Name())
	assert.Equal(t, "VC", inv.Type())
	assert.Equal(t, "Menlo Park", inv.GlobalHQ())
	assert.Equal(t, "Seed", inv.StageOfInvestment())
	assert.Equal(t, "https://sequoiacap.com", inv.Website())
	assert.False(t, inv.CreatedAt().IsZero())
	assert.Equal(t, inv.CreatedAt(), inv.UpdatedAt())
}

func TestValidID(t *testing.T) {
	assert.True(t, ValidID("d9428888-122b-11e1-b85c-61cd3cbb3210"))
	assert.False(t, ValidID("not-a-uuid"))
	assert.False(t, ValidID(""))
}

func TestUpdateIsEmpty(t *testing.T) {
	assert.True(t, Update{}.IsEmpty())

	name := "Accel"
	assert.False(t, Update{Name: &name}.IsEmpty())
}
