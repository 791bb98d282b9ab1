package analyzer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/josephgoksu/RepoWing/internal/task"
)

func taskIndex() *Index {
	return indexOf(
		"package.json",
		"README.md",
		"server/routes/auth.js",
		"server/middleware/auth.js",
	)
}

func TestMatchTask_Authentication(t *testing.T) {
	m := MatchTask(taskIndex(), task.SubTask{ID: "t1", Title: "Implement user authentication flow"})

	require.Len(t, m.CategoryEvidence, 1)
	assert.Equal(t, "authentication", m.CategoryEvidence[0].Category)
	assert.Equal(t, []string{"server/middleware/auth.js", "server/routes/auth.js"}, m.CategoryEvidence[0].Files)
	assert.Equal(t, 40, m.MatchScore)
	assert.Equal(t, StatusInProgress, m.Status)
	assert.Equal(t, "t1", m.TaskID)
}

func TestMatchTask_NoKeywords(t *testing.T) {
	m := MatchTask(taskIndex(), task.SubTask{ID: "t2", Title: "Optimize images", IsComplete: true})

	assert.Empty(t, m.CategoryEvidence)
	assert.Equal(t, 0, m.MatchScore)
	assert.Equal(t, StatusNotStarted, m.Status)
	assert.True(t, m.IsComplete)
}

func TestMatchTask_CategoryWithoutEvidenceIsOmitted(t *testing.T) {
	m := MatchTask(taskIndex(), task.SubTask{ID: "t3", Title: "Integrate Stripe payments"})

	assert.Empty(t, m.CategoryEvidence)
	assert.Equal(t, 0, m.MatchScore)
}

func TestMatchTask_EvidenceCapped(t *testing.T) {
	ix := indexOf(
		"auth/a.js", "auth/b.js", "auth/c.js", "auth/d.js", "auth/e.js", "auth/f.js", "auth/g.js",
	)
	m := MatchTask(ix, task.SubTask{ID: "t", Title: "Login page"})

	require.NotEmpty(t, m.CategoryEvidence)
	assert.Len(t, m.CategoryEvidence[0].Files, maxEvidenceFiles)
	assert.Equal(t, 100, m.MatchScore)
	assert.Equal(t, StatusLikelyDone, m.Status)
}

func TestMatchTask_SumIsClamped(t *testing.T) {
	ix := indexOf(
		"server/models/user.js",
		"server/models/post.js",
		"server/db/schema.sql",
		"server/routes/users.js",
		"server/routes/posts.js",
		"server/api/index.js",
	)
	m := MatchTask(ix, task.SubTask{ID: "t", Title: "Add database models and API routes"})

	require.Len(t, m.CategoryEvidence, 2)
	assert.Equal(t, "database", m.CategoryEvidence[0].Category)
	assert.Len(t, m.CategoryEvidence[0].Files, 3)
	assert.Equal(t, "api", m.CategoryEvidence[1].Category)
	assert.Len(t, m.CategoryEvidence[1].Files, 3)
	assert.Equal(t, 100, m.MatchScore)
}

func TestStatusFor(t *testing.T) {
	tests := []struct {
		score int
		want  TaskStatus
	}{
		{100, StatusLikelyDone},
		{60, StatusLikelyDone},
		{59, StatusInProgress},
		{30, StatusInProgress},
		{29, StatusNotStarted},
		{0, StatusNotStarted},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, StatusFor(tt.score), "score %d", tt.score)
	}
}

func TestMatchPhases(t *testing.T) {
	ix := indexOf(
		"server/routes/auth.js",
		"server/middleware/auth.js",
		"server/models/user.js",
		"server/models/post.js",
		"server/db/schema.sql",
		"server/api/index.js",
		"server/routes/posts.js",
	)
	phases := []task.Phase{
		{ID: "p1", Title: "Core", SubTasks: []task.SubTask{
			{ID: "t1", Title: "Implement user authentication flow"},
			{ID: "t2", Title: "Optimize images"},
			{ID: "t3", Title: "Add database models and API routes"},
		}},
		{ID: "p2", Title: "Empty"},
	}

	got := MatchPhases(ix, phases)
	require.Len(t, got, 2)

	core := got[0]
	assert.Equal(t, "p1", core.PhaseID)
	require.Len(t, core.Tasks, 3)
	assert.Equal(t, []int{40, 0, 100}, []int{core.Tasks[0].MatchScore, core.Tasks[1].MatchScore, core.Tasks[2].MatchScore})
	assert.Equal(t, PhaseSummary{Total: 3, LikelyDone: 1, InProgress: 1, NotStarted: 1, AverageScore: 47}, core.Summary)

	assert.Equal(t, PhaseSummary{}, got[1].Summary)
	assert.Empty(t, got[1].Tasks)
}
