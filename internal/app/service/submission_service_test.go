package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"task_portal/internal/common"
	"task_portal/internal/domain/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateSubmission(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	admin := env.createUser(t, "admin", model.RoleAdmin)
	cand := env.createUser(t, "cand", model.RoleCandidate)
	task := env.createTask(t, admin.ID, nil)

	sub, err := env.submissions.Create(ctx, model.RoleCandidate, cand.ID, CreateSubmissionInput{
		TaskID:  task.ID,
		Content: "done",
	})
	require.NoError(t, err)
	assert.Equal(t, model.SubmissionPending, sub.Status)
	assert.Equal(t, cand.ID, sub.CandidateID)
	assert.Equal(t, task.ID, sub.TaskID)
	require.NotNil(t, sub.Content)
	assert.Equal(t, "done", *sub.Content)
	assert.False(t, sub.SubmittedAt.IsZero())
}

func TestCreateSubmissionWithFile(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	admin := env.createUser(t, "admin", model.RoleAdmin)
	cand := env.createUser(t, "cand", model.RoleCandidate)
	task := env.createTask(t, admin.ID, nil)

	sub, err := env.submissions.Create(ctx, model.RoleCandidate, cand.ID, CreateSubmissionInput{
		TaskID: task.ID,
		File: &FileUpload{
			Reader:      strings.NewReader("resume bytes"),
			Name:        "My Resume.pdf",
			ContentType: "application/pdf",
		},
	})
	require.NoError(t, err)
	require.NotNil(t, sub.FileURL)
	require.NotNil(t, sub.FileName)
	require.NotNil(t, sub.FileType)
	assert.Equal(t, "My Resume.pdf", *sub.FileName)
	assert.Equal(t, "application/pdf", *sub.FileType)
	assert.NotEmpty(t, *sub.FileURL)
}

func TestCreateSubmissionRules(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	admin := env.createUser(t, "admin", model.RoleAdmin)
	alice := env.createUser(t, "alice", model.RoleCandidate)
	bob := env.createUser(t, "bob", model.RoleCandidate)
	open := env.createTask(t, admin.ID, nil)
	aliceOnly := env.createTask(t, admin.ID, &alice.ID)

	// Neither content nor file.
	_, err := env.submissions.Create(ctx, model.RoleCandidate, alice.ID, CreateSubmissionInput{TaskID: open.ID})
	assert.True(t, errors.Is(err, common.ErrValidation))

	// Admins do not submit work.
	_, err = env.submissions.Create(ctx, model.RoleAdmin, admin.ID, CreateSubmissionInput{TaskID: open.ID, Content: "x"})
	assert.True(t, errors.Is(err, common.ErrForbidden))

	// Task not visible to the caller.
	_, err = env.submissions.Create(ctx, model.RoleCandidate, bob.ID, CreateSubmissionInput{TaskID: aliceOnly.ID, Content: "x"})
	assert.True(t, errors.Is(err, common.ErrForbidden))

	// Unknown task.
	_, err = env.submissions.Create(ctx, model.RoleCandidate, alice.ID, CreateSubmissionInput{TaskID: "nope", Content: "x"})
	assert.True(t, errors.Is(err, common.ErrNotFound))

	// Archived task.
	archived := model.TaskStatusArchived
	_, err = env.tasks.Update(ctx, model.RoleAdmin, open.ID, UpdateTaskRequest{Status: &archived})
	require.NoError(t, err)
	_, err = env.submissions.Create(ctx, model.RoleCandidate, alice.ID, CreateSubmissionInput{TaskID: open.ID, Content: "x"})
	assert.True(t, errors.Is(err, common.ErrValidation))
}

func TestCreateSubmissionDuplicateConflicts(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	admin := env.createUser(t, "admin", model.RoleAdmin)
	cand := env.createUser(t, "cand", model.RoleCandidate)
	task := env.createTask(t, admin.ID, nil)

	_, err := env.submissions.Create(ctx, model.RoleCandidate, cand.ID, CreateSubmissionInput{TaskID: task.ID, Content: "first"})
	require.NoError(t, err)

	_, err = env.submissions.Create(ctx, model.RoleCandidate, cand.ID, CreateSubmissionInput{TaskID: task.ID, Content: "second"})
	assert.True(t, errors.Is(err, common.ErrConflict))
}

func TestListSubmissionsScoping(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	admin := env.createUser(t, "admin", model.RoleAdmin)
	alice := env.createUser(t, "alice", model.RoleCandidate)
	bob := env.createUser(t, "bob", model.RoleCandidate)
	task := env.createTask(t, admin.ID, nil)

	_, err := env.submissions.Create(ctx, model.RoleCandidate, alice.ID, CreateSubmissionInput{TaskID: task.ID, Content: "alice work"})
	require.NoError(t, err)
	_, err = env.submissions.Create(ctx, model.RoleCandidate, bob.ID, CreateSubmissionInput{TaskID: task.ID, Content: "bob work"})
	require.NoError(t, err)

	all, err := env.submissions.List(ctx, model.RoleAdmin, admin.ID, "", "")
	require.NoError(t, err)
	assert.Len(t, all, 2)
	for _, s := range all {
		assert.NotNil(t, s.CandidateName, "list joins candidate identity")
		assert.NotNil(t, s.TaskTitle, "list joins task identity")
	}

	mine, err := env.submissions.List(ctx, model.RoleCandidate, alice.ID, "", "")
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, alice.ID, mine[0].CandidateID)

	// Requesting another candidate's submissions is forbidden.
	_, err = env.submissions.List(ctx, model.RoleCandidate, alice.ID, "", bob.ID)
	assert.True(t, errors.Is(err, common.ErrForbidden))

	// Admin can filter by task and candidate.
	filtered, err := env.submissions.List(ctx, model.RoleAdmin, admin.ID, task.ID, bob.ID)
	require.NoError(t, err)
	require.Len(t, filtered, 1)
	assert.Equal(t, bob.ID, filtered[0].CandidateID)
}

func TestReviewSubmission(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	admin := env.createUser(t, "admin", model.RoleAdmin)
	cand := env.createUser(t, "cand", model.RoleCandidate)
	task := env.createTask(t, admin.ID, nil)

	sub, err := env.submissions.Create(ctx, model.RoleCandidate, cand.ID, CreateSubmissionInput{TaskID: task.ID, Content: "done"})
	require.NoError(t, err)

	feedback := "Good work"
	score := 90
	reviewed, err := env.submissions.Review(ctx, model.RoleAdmin, sub.ID, ReviewSubmissionRequest{
		Status:   model.SubmissionApproved,
		Feedback: &feedback,
		Score:    &score,
	})
	require.NoError(t, err)
	assert.Equal(t, model.SubmissionApproved, reviewed.Status)
	require.NotNil(t, reviewed.Score)
	assert.Equal(t, 90, *reviewed.Score)

	// Re-review overwrites the previous decision.
	rereviewed, err := env.submissions.Review(ctx, model.RoleAdmin, sub.ID, ReviewSubmissionRequest{Status: model.SubmissionRejected})
	require.NoError(t, err)
	assert.Equal(t, model.SubmissionRejected, rereviewed.Status)
}

func TestReviewSubmissionValidation(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	admin := env.createUser(t, "admin", model.RoleAdmin)
	cand := env.createUser(t, "cand", model.RoleCandidate)
	task := env.createTask(t, admin.ID, nil)

	sub, err := env.submissions.Create(ctx, model.RoleCandidate, cand.ID, CreateSubmissionInput{TaskID: task.ID, Content: "done"})
	require.NoError(t, err)

	// "pending" is not a review decision.
	_, err = env.submissions.Review(ctx, model.RoleAdmin, sub.ID, ReviewSubmissionRequest{Status: model.SubmissionPending})
	assert.True(t, errors.Is(err, common.ErrValidation))

	// Score outside [0,100].
	bad := 150
	_, err = env.submissions.Review(ctx, model.RoleAdmin, sub.ID, ReviewSubmissionRequest{Status: model.SubmissionApproved, Score: &bad})
	assert.True(t, errors.Is(err, common.ErrValidation))

	_, err = env.submissions.Review(ctx, model.RoleAdmin, "no-such-id", ReviewSubmissionRequest{Status: model.SubmissionApproved})
	assert.True(t, errors.Is(err, common.ErrNotFound))
}

func TestReviewSubmissionIsAdminOnly(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	admin := env.createUser(t, "admin", model.RoleAdmin)
	cand := env.createUser(t, "cand", model.RoleCandidate)
	task := env.createTask(t, admin.ID, nil)

	sub, err := env.submissions.Create(ctx, model.RoleCandidate, cand.ID, CreateSubmissionInput{TaskID: task.ID, Content: "done"})
	require.NoError(t, err)

	_, err = env.submissions.Review(ctx, model.RoleCandidate, sub.ID, ReviewSubmissionRequest{Status: model.SubmissionApproved})
	assert.True(t, errors.Is(err, common.ErrForbidden))
}
