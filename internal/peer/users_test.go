package peer

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phrazzld/clinic-api/internal/platform/logger"
)

type recordingObserver struct {
	mu       sync.Mutex
	outcomes []string
}

func (r *recordingObserver) ObservePeer(peer, outcome string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.outcomes = append(r.outcomes, peer+":"+outcome)
}

func TestUsersClient_ListUsers(t *testing.T) {
	tests := []struct {
		name        string
		handler     http.HandlerFunc
		wantOK      bool
		wantCount   int
		wantOutcome string
	}{
		{
			name: "array body",
			handler: func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/users", r.URL.Path)
				w.Header().Set("Content-Type", "application/json")
				_, _ = w.Write([]byte(`[{"id":1},{"id":2},{"id":3}]`))
			},
			wantOK:      true,
			wantCount:   3,
			wantOutcome: OutcomeOK,
		},
		{
			name: "empty array",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(`[]`))
			},
			wantOK:      true,
			wantCount:   0,
			wantOutcome: OutcomeOK,
		},
		{
			name: "server error",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
				_, _ = w.Write([]byte(`[{"id":1}]`))
			},
			wantOutcome: OutcomeBadStatus,
		},
		{
			name: "object instead of array",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(`{"users":[]}`))
			},
			wantOutcome: OutcomeBadBody,
		},
		{
			name: "null body",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(`null`))
			},
			wantOutcome: OutcomeBadBody,
		},
		{
			name: "malformed json",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(`[{"id":`))
			},
			wantOutcome: OutcomeBadBody,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(tt.handler)
			defer srv.Close()

			obs := &recordingObserver{}
			log, _ := logger.NewTestLogger()
			client := NewUsersClient(srv.URL+"/", time.Second, log, WithObserver(obs))

			res := client.ListUsers(context.Background())
			users, ok := res.Get()
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Len(t, users, tt.wantCount)
				assert.NoError(t, res.Err())
			} else {
				assert.ErrorIs(t, res.Err(), ErrUnavailable)
			}
			assert.Equal(t, []string{"users-api:" + tt.wantOutcome}, obs.outcomes)
		})
	}
}

func TestUsersClient_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	log, buf := logger.NewTestLogger()
	res := NewUsersClient(url, time.Second, log).ListUsers(context.Background())

	_, ok := res.Get()
	assert.False(t, ok)
	assert.ErrorIs(t, res.Err(), ErrUnavailable)
	assert.Contains(t, buf.String(), "peer unavailable")
}

func TestUsersClient_Timeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	log, _ := logger.NewTestLogger()
	client := NewUsersClient(srv.URL, 50*time.Millisecond, log)

	start := time.Now()
	res := client.ListUsers(context.Background())
	require.Less(t, time.Since(start), 2*time.Second)

	_, ok := res.Get()
	assert.False(t, ok)
}
