package performance

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/perfhub/backend/internal/domain/identity"
)

func TestNewIndicator(t *testing.T) {
	t.Run("creates indicator with valid inputs", func(t *testing.T) {
		ind, err := NewIndicator("Monthly Sales", 20, KindQuantitative, d("90"), identity.RoleEmployee)
		require.NoError(t, err)
		require.NotNil(t, ind)

		assert.Equal(t, "Monthly Sales", ind.Name)
		assert.Equal(t, 20, ind.Weight)
		assert.Equal(t, KindQuantitative, ind.Kind)
		assert.True(t, ind.Target.Equal(d("90")))
		assert.Equal(t, identity.RoleEmployee, ind.Role)
		assert.True(t, ind.Active)
		assert.NotEmpty(t, ind.ID)
		assert.Equal(t, 1, ind.GetVersion())
	})

	t.Run("publishes IndicatorCreated event", func(t *testing.T) {
		ind, err := NewIndicator("Monthly Sales", 20, KindQuantitative, d("90"), identity.RoleEmployee)
		require.NoError(t, err)

		events := ind.GetDomainEvents()
		require.Len(t, events, 1)
		assert.Equal(t, EventTypeIndicatorCreated, events[0].EventType())
	})

	t.Run("fails with empty name", func(t *testing.T) {
		_, err := NewIndicator("  ", 20, KindQuantitative, d("90"), identity.RoleEmployee)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "name cannot be empty")
	})

	t.Run("fails with name too long", func(t *testing.T) {
		_, err := NewIndicator(strings.Repeat("x", 201), 20, KindQuantitative, d("90"), identity.RoleEmployee)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "cannot exceed 200 characters")
	})

	t.Run("fails with weight above 100", func(t *testing.T) {
		_, err := NewIndicator("Sales", 101, KindQuantitative, d("90"), identity.RoleEmployee)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "between 0 and 100")
	})

	t.Run("fails with negative weight", func(t *testing.T) {
		_, err := NewIndicator("Sales", -1, KindQuantitative, d("90"), identity.RoleEmployee)
		require.Error(t, err)
	})

	t.Run("fails with unknown kind", func(t *testing.T) {
		_, err := NewIndicator("Sales", 20, IndicatorKind("vibes"), d("90"), identity.RoleEmployee)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "quantitative or qualitative")
	})

	t.Run("fails with non-positive target", func(t *testing.T) {
		_, err := NewIndicator("Sales", 20, KindQuantitative, d("0"), identity.RoleEmployee)
		require.Error(t, err)

		_, err = NewIndicator("Sales", 20, KindQuantitative, d("-5"), identity.RoleEmployee)
		require.Error(t, err)
	})

	t.Run("fails with unknown role", func(t *testing.T) {
		_, err := NewIndicator("Sales", 20, KindQuantitative, d("90"), identity.Role("intern"))
		require.Error(t, err)
	})
}

func TestIndicator_Update(t *testing.T) {
	newIndicator := func(t *testing.T) *Indicator {
		ind, err := NewIndicator("Sales", 20, KindQuantitative, d("90"), identity.RoleEmployee)
		require.NoError(t, err)
		return ind
	}

	t.Run("updates name, weight, and target", func(t *testing.T) {
		ind := newIndicator(t)

		err := ind.Update("Quarterly Sales", 30, d("120"))
		require.NoError(t, err)

		assert.Equal(t, "Quarterly Sales", ind.Name)
		assert.Equal(t, 30, ind.Weight)
		assert.True(t, ind.Target.Equal(d("120")))
		assert.Equal(t, 2, ind.GetVersion())
	})

	t.Run("rejects invalid weight", func(t *testing.T) {
		ind := newIndicator(t)
		err := ind.Update("Sales", 150, d("90"))
		require.Error(t, err)
		assert.Equal(t, 20, ind.Weight)
	})

	t.Run("rejects non-positive target", func(t *testing.T) {
		ind := newIndicator(t)
		err := ind.Update("Sales", 20, d("0"))
		require.Error(t, err)
	})
}

func TestIndicator_Lifecycle(t *testing.T) {
	t.Run("deactivate then activate", func(t *testing.T) {
		ind, err := NewIndicator("Sales", 20, KindQuantitative, d("90"), identity.RoleEmployee)
		require.NoError(t, err)

		require.NoError(t, ind.Deactivate())
		assert.False(t, ind.Active)

		err = ind.Deactivate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "already inactive")

		require.NoError(t, ind.Activate())
		assert.True(t, ind.Active)

		err = ind.Activate()
		require.Error(t, err)
	})

	t.Run("applies only to matching role while active", func(t *testing.T) {
		ind, err := NewIndicator("Sales", 20, KindQuantitative, d("90"), identity.RoleEmployee)
		require.NoError(t, err)

		assert.True(t, ind.AppliesTo(identity.RoleEmployee))
		assert.False(t, ind.AppliesTo(identity.RoleManager))

		require.NoError(t, ind.Deactivate())
		assert.False(t, ind.AppliesTo(identity.RoleEmployee))
	})
}
