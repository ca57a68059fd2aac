package request_test

import (
	"context"
	"testing"

	"go-workforce/internal/request"

	"github.com/stretchr/testify/assert"
)

func TestLedger_Assign(t *testing.T) {
	ctx := context.Background()

	t.Run("creates an unprocessed slot", func(t *testing.T) {
		repo := &fakeRequestRepository{}
		var created *request.ApproverAssignment
		repo.createAssignmentFn = func(ctx context.Context, a *request.ApproverAssignment) error {
			created = a
			return nil
		}

		err := request.NewLedger(repo).Assign(ctx, 7, 2)

		assert.NoError(t, err)
		assert.NotNil(t, created)
		assert.Equal(t, uint(7), created.RequestID)
		assert.Equal(t, uint(2), created.ApproverID)
		assert.False(t, created.IsProcessed)
	})

	t.Run("negative approver already assigned", func(t *testing.T) {
		repo := &fakeRequestRepository{}
		repo.getAssignmentFn = func(ctx context.Context, requestID, approverID uint) (*request.ApproverAssignment, error) {
			return &request.ApproverAssignment{RequestID: requestID, ApproverID: approverID}, nil
		}

		err := request.NewLedger(repo).Assign(ctx, 7, 2)

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "already an approver")
	})
}

func TestLedger_MarkProcessed(t *testing.T) {
	ctx := context.Background()

	t.Run("flips the slot", func(t *testing.T) {
		repo := &fakeRequestRepository{}
		repo.getAssignmentFn = func(ctx context.Context, requestID, approverID uint) (*request.ApproverAssignment, error) {
			return &request.ApproverAssignment{RequestID: requestID, ApproverID: approverID}, nil
		}
		var updated *request.ApproverAssignment
		repo.updateAssignmentFn = func(ctx context.Context, a *request.ApproverAssignment) error {
			updated = a
			return nil
		}

		err := request.NewLedger(repo).MarkProcessed(ctx, 7, 2)

		assert.NoError(t, err)
		assert.NotNil(t, updated)
		assert.True(t, updated.IsProcessed)
	})

	t.Run("negative no slot for approver", func(t *testing.T) {
		repo := &fakeRequestRepository{}

		err := request.NewLedger(repo).MarkProcessed(ctx, 7, 8)

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "not an approver")
	})
}

func TestLedger_AllProcessed(t *testing.T) {
	ctx := context.Background()

	t.Run("zero slots counts as fully processed", func(t *testing.T) {
		done, err := request.NewLedger(&fakeRequestRepository{}).AllProcessed(ctx, 7)

		assert.NoError(t, err)
		assert.True(t, done)
	})

	t.Run("open slots are not done", func(t *testing.T) {
		repo := &fakeRequestRepository{}
		repo.countUnprocessedAssignmentsFn = func(ctx context.Context, requestID uint) (int64, error) {
			return 2, nil
		}

		done, err := request.NewLedger(repo).AllProcessed(ctx, 7)

		assert.NoError(t, err)
		assert.False(t, done)
	})
}

func TestLedger_ApproverIDs(t *testing.T) {
	repo := &fakeRequestRepository{}
	repo.getAssignmentsFn = func(ctx context.Context, requestID uint) ([]request.ApproverAssignment, error) {
		return []request.ApproverAssignment{
			{RequestID: 7, ApproverID: 2},
			{RequestID: 7, ApproverID: 5, IsProcessed: true},
		}, nil
	}

	ids, err := request.NewLedger(repo).ApproverIDs(context.Background(), 7)

	assert.NoError(t, err)
	assert.Equal(t, []uint{2, 5}, ids)
}
