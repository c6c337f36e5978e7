package crm

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProspect(t *testing.T) {
	ownerID := uuid.New()

	t.Run("creates prospect successfully", func(t *testing.T) {
		prospect, err := NewProspect(ownerID, "Jane Smith", "jane@example.com")

		require.NoError(t, err)
		assert.NotNil(t, prospect)
		assert.Equal(t, "Jane Smith", prospect.FullName)
		assert.Equal(t, "jane@example.com", prospect.Email)
		assert.Equal(t, ProspectStateNew, prospect.State)
		assert.Equal(t, InterestImport, prospect.Interest)
		require.NotNil(t, prospect.GetOwnerID())
		assert.Equal(t, ownerID, *prospect.GetOwnerID())
		assert.Len(t, prospect.GetDomainEvents(), 1)
	})

	t.Run("lowercases email", func(t *testing.T) {
		prospect, err := NewProspect(ownerID, "Jane Smith", "Jane.Smith@Example.COM")

		require.NoError(t, err)
		assert.Equal(t, "jane.smith@example.com", prospect.Email)
	})

	t.Run("fails with empty name", func(t *testing.T) {
		prospect, err := NewProspect(ownerID, "  ", "jane@example.com")

		assert.Error(t, err)
		assert.Nil(t, prospect)
		assert.Contains(t, err.Error(), "name")
	})

	t.Run("fails with invalid email", func(t *testing.T) {
		prospect, err := NewProspect(ownerID, "Jane Smith", "not-an-email")

		assert.Error(t, err)
		assert.Nil(t, prospect)
		assert.Contains(t, err.Error(), "email format")
	})
}

func TestProspectSetState(t *testing.T) {
	ownerID := uuid.New()

	t.Run("transitions through pipeline states", func(t *testing.T) {
		prospect, _ := NewProspect(ownerID, "Jane Smith", "jane@example.com")
		prospect.ClearDomainEvents()

		require.NoError(t, prospect.SetState(ProspectStateContacted))
		require.NoError(t, prospect.SetState(ProspectStateNegotiating))
		require.NoError(t, prospect.SetState(ProspectStateWon))

		assert.True(t, prospect.IsWon())
		assert.True(t, prospect.IsClosed())
		assert.Len(t, prospect.GetDomainEvents(), 3)
	})

	t.Run("any state may move to any other state", func(t *testing.T) {
		prospect, _ := NewProspect(ownerID, "Jane Smith", "jane@example.com")
		require.NoError(t, prospect.SetState(ProspectStateLost))

		err := prospect.SetState(ProspectStateNew)

		require.NoError(t, err)
		assert.Equal(t, ProspectStateNew, prospect.State)
		assert.False(t, prospect.IsClosed())
	})

	t.Run("setting the same state is a no-op", func(t *testing.T) {
		prospect, _ := NewProspect(ownerID, "Jane Smith", "jane@example.com")
		prospect.ClearDomainEvents()

		err := prospect.SetState(ProspectStateNew)

		require.NoError(t, err)
		assert.Empty(t, prospect.GetDomainEvents())
	})

	t.Run("fails with unknown state", func(t *testing.T) {
		prospect, _ := NewProspect(ownerID, "Jane Smith", "jane@example.com")

		err := prospect.SetState(ProspectState("MAYBE"))

		assert.Error(t, err)
	})
}

func TestProspectStateColor(t *testing.T) {
	ownerID := uuid.New()
	prospect, _ := NewProspect(ownerID, "Jane Smith", "jane@example.com")

	cases := map[ProspectState]string{
		ProspectStateNew:         "secondary",
		ProspectStateContacted:   "warning",
		ProspectStateNegotiating: "primary",
		ProspectStateWon:         "success",
		ProspectStateLost:        "danger",
	}
	for state, color := range cases {
		require.NoError(t, prospect.SetState(state))
		assert.Equal(t, color, prospect.StateColor())
	}
}

func TestProspectUpdate(t *testing.T) {
	ownerID := uuid.New()
	prospect, _ := NewProspect(ownerID, "Jane Smith", "jane@example.com")

	t.Run("updates contact fields", func(t *testing.T) {
		err := prospect.Update("Jane Doe", "jane.doe@example.com", "+34600123456", "Acme SL", "Buyer")

		require.NoError(t, err)
		assert.Equal(t, "Jane Doe", prospect.FullName)
		assert.Equal(t, "jane.doe@example.com", prospect.Email)
		assert.Equal(t, "Acme SL", prospect.Company)
		assert.Equal(t, "Buyer", prospect.Role)
	})

	t.Run("fails with empty name", func(t *testing.T) {
		err := prospect.Update("", "jane@example.com", "", "", "")

		assert.Error(t, err)
	})
}

func TestProspectInterest(t *testing.T) {
	ownerID := uuid.New()
	prospect, _ := NewProspect(ownerID, "Jane Smith", "jane@example.com")

	t.Run("sets valid interest", func(t *testing.T) {
		err := prospect.SetInterest(InterestExport)

		require.NoError(t, err)
		assert.Equal(t, InterestExport, prospect.Interest)
	})

	t.Run("fails with unknown interest", func(t *testing.T) {
		err := prospect.SetInterest(ProspectInterest("GOLF"))

		assert.Error(t, err)
	})
}

func TestNewTag(t *testing.T) {
	t.Run("creates tag successfully", func(t *testing.T) {
		tag, err := NewTag("hot-lead")

		require.NoError(t, err)
		assert.Equal(t, "hot-lead", tag.Name)
	})

	t.Run("fails with empty name", func(t *testing.T) {
		tag, err := NewTag("  ")

		assert.Error(t, err)
		assert.Nil(t, tag)
	})
}

func TestNewProspectWorker(t *testing.T) {
	prospectID := uuid.New()
	workerID := uuid.New()

	t.Run("creates link with explicit rating", func(t *testing.T) {
		link, err := NewProspectWorker(prospectID, workerID, 5)

		require.NoError(t, err)
		assert.Equal(t, 5, link.Rating)
	})

	t.Run("defaults rating when zero", func(t *testing.T) {
		link, err := NewProspectWorker(prospectID, workerID, 0)

		require.NoError(t, err)
		assert.Equal(t, DefaultRating, link.Rating)
	})

	t.Run("fails with rating out of range", func(t *testing.T) {
		link, err := NewProspectWorker(prospectID, workerID, 6)

		assert.Error(t, err)
		assert.Nil(t, link)
	})
}
