package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"farm-livestock-records/internal/domain/activity"

	"github.com/stretchr/testify/assert"
)

func TestActorContext(t *testing.T) {
	var got string
	h := ActorContext(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = ActorID(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(ActorHeader, "  vet-7 ")
	h.ServeHTTP(httptest.NewRecorder(), req)
	assert.Equal(t, "vet-7", got)

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, activity.ActorAnonymous, got)
}
