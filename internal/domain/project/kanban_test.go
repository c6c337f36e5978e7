package project

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewKanbanColumn(t *testing.T) {
	projectID := uuid.New()

	t.Run("creates column at position", func(t *testing.T) {
		col, err := NewKanbanColumn(projectID, "To Do", "clipboard", 0)

		require.NoError(t, err)
		assert.Equal(t, "To Do", col.Title)
		assert.Equal(t, "clipboard", col.Icon)
		assert.Equal(t, 0, col.Position)
	})

	t.Run("fails with empty title", func(t *testing.T) {
		col, err := NewKanbanColumn(projectID, "", "", 0)

		assert.Error(t, err)
		assert.Nil(t, col)
	})

	t.Run("fails with negative position", func(t *testing.T) {
		col, err := NewKanbanColumn(projectID, "To Do", "", -1)

		assert.Error(t, err)
		assert.Nil(t, col)
	})
}

func TestKanbanColumnUpdate(t *testing.T) {
	col, _ := NewKanbanColumn(uuid.New(), "To Do", "", 0)

	require.NoError(t, col.Update("Doing", "gear"))
	assert.Equal(t, "Doing", col.Title)
	assert.Equal(t, "gear", col.Icon)
	assert.Error(t, col.Update("", ""))
}

func TestNewKanbanTask(t *testing.T) {
	columnID := uuid.New()

	t.Run("creates task at position", func(t *testing.T) {
		task, err := NewKanbanTask(columnID, "Write proposal", "First draft", 2)

		require.NoError(t, err)
		assert.Equal(t, columnID, task.ColumnID)
		assert.Equal(t, 2, task.Position)
	})

	t.Run("fails with empty title", func(t *testing.T) {
		task, err := NewKanbanTask(columnID, "  ", "", 0)

		assert.Error(t, err)
		assert.Nil(t, task)
	})
}

func TestKanbanTaskMoveTo(t *testing.T) {
	task, _ := NewKanbanTask(uuid.New(), "Write proposal", "", 0)
	target := uuid.New()

	t.Run("moves task to another column", func(t *testing.T) {
		err := task.MoveTo(target, 3)

		require.NoError(t, err)
		assert.Equal(t, target, task.ColumnID)
		assert.Equal(t, 3, task.Position)
	})

	t.Run("fails with nil column", func(t *testing.T) {
		assert.Error(t, task.MoveTo(uuid.Nil, 0))
	})

	t.Run("fails with negative position", func(t *testing.T) {
		assert.Error(t, task.MoveTo(target, -1))
	})
}

func TestNewDiagram(t *testing.T) {
	projectID := uuid.New()

	t.Run("stores graph as sent", func(t *testing.T) {
		graph := `{"shapes":[{"id":1,"type":"box"}]}`
		d, err := NewDiagram(projectID, "Org chart", graph, "<svg/>")

		require.NoError(t, err)
		assert.Equal(t, graph, d.GraphJSON)
		assert.Equal(t, "<svg/>", d.Snapshot)
	})

	t.Run("defaults empty title", func(t *testing.T) {
		d, err := NewDiagram(projectID, "", `{}`, "")

		require.NoError(t, err)
		assert.Equal(t, "Untitled diagram", d.Title)
	})

	t.Run("fails with malformed graph", func(t *testing.T) {
		d, err := NewDiagram(projectID, "Org chart", `{"shapes":`, "")

		assert.Error(t, err)
		assert.Nil(t, d)
	})

	t.Run("fails with empty graph", func(t *testing.T) {
		d, err := NewDiagram(projectID, "Org chart", "", "")

		assert.Error(t, err)
		assert.Nil(t, d)
	})
}

func TestDiagramUpdate(t *testing.T) {
	d, _ := NewDiagram(uuid.New(), "Org chart", `{}`, "")

	t.Run("overwrites title, graph and snapshot", func(t *testing.T) {
		err := d.Update("Flow", `{"v":2}`, "<svg v=2/>")

		require.NoError(t, err)
		assert.Equal(t, "Flow", d.Title)
		assert.Equal(t, `{"v":2}`, d.GraphJSON)
		assert.Equal(t, "<svg v=2/>", d.Snapshot)
	})

	t.Run("rejects malformed graph", func(t *testing.T) {
		assert.Error(t, d.Update("Flow", `not json`, ""))
	})
}
