package rest

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/favour-22/alx-polly/internal/domain"
)

type stubPollService struct {
	created *domain.Poll
}

func (s *stubPollService) List(_ context.Context, _ domain.PollListOptions) ([]*domain.Poll, int64, error) {
	return nil, 0, nil
}

func (s *stubPollService) Get(_ context.Context, _ uuid.UUID) (*domain.Poll, error) {
	return nil, domain.ErrPollNotFound
}

func (s *stubPollService) Create(_ context.Context, req domain.PollSaveRequest, ownerID uuid.UUID) (*domain.Poll, error) {
	s.created = &domain.Poll{ID: uuid.New(), OwnerID: ownerID, Question: req.Question}
	return s.created, nil
}

func (s *stubPollService) Delete(_ context.Context, _, _ uuid.UUID) error {
	return nil
}

func (s *stubPollService) Vote(_ context.Context, _, _, _ uuid.UUID) (*domain.PollResults, error) {
	return nil, domain.ErrPollNotFound
}

func (s *stubPollService) Results(_ context.Context, _ uuid.UUID) (*domain.PollResults, error) {
	return nil, domain.ErrPollNotFound
}

func (s *stubPollService) Activity(_ context.Context, _ uuid.UUID, _ int64) ([]domain.Vote, error) {
	return nil, nil
}

func (s *stubPollService) CloseExpired(_ context.Context) ([]uuid.UUID, error) {
	return nil, nil
}

func pollBody(t *testing.T, question string, optionCount int) string {
	t.Helper()

	req := domain.PollSaveRequest{Question: question}
	for i := 0; i < optionCount; i++ {
		req.Options = append(req.Options, fmt.Sprintf("option %d", i))
	}

	data, err := json.Marshal(req)
	require.NoError(t, err)
	return string(data)
}

func TestStoreRejectsOptionCountOutOfBounds(t *testing.T) {
	cases := []struct {
		name    string
		options int
	}{
		{"one option", 1},
		{"eleven options", 11},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc := &stubPollService{}
			h := NewPollHandler(svc)

			req := httptest.NewRequest(http.MethodPost, "/polls",
				strings.NewReader(pollBody(t, "Tabs or spaces?", tc.options)))
			res := httptest.NewRecorder()

			h.Store(res, req)

			assert.Equal(t, http.StatusUnprocessableEntity, res.Code)

			var out APIResponse
			require.NoError(t, json.Unmarshal(res.Body.Bytes(), &out))
			assert.NotEmpty(t, out.Errors["options"])
			assert.Nil(t, svc.created, "must not reach the service")
		})
	}
}

func TestPollSaveRequestOptionBounds(t *testing.T) {
	for _, count := range []int{2, 10} {
		req := domain.PollSaveRequest{Question: "Tabs or spaces?"}
		for i := 0; i < count; i++ {
			req.Options = append(req.Options, fmt.Sprintf("option %d", i))
		}

		assert.Empty(t, ValidateStruct(req), "%d options must be valid", count)
	}
}
