package middleware

import (
	"context"
	"net/http"
	"strings"

	"farm-livestock-records/internal/domain/activity"
)

type ctxKey string

const actorKey ctxKey = "actor"

// ActorHeader identifica quién carga los datos. Solo se usa para atribuir
// entradas del historial; no es autenticación.
const ActorHeader = "X-Actor-ID"

// ActorContext guarda el actor del header en el contexto.
// Si no viene, el request sigue igual y se registra como anónimo.
func ActorContext(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if id := strings.TrimSpace(r.Header.Get(ActorHeader)); id != "" {
			ctx := context.WithValue(r.Context(), actorKey, id)
			next.ServeHTTP(w, r.WithContext(ctx))
			return
		}
		next.ServeHTTP(w, r)
	})
}

func ActorID(ctx context.Context) string {
	if v, ok := ctx.Value(actorKey).(string); ok && v != "" {
		return v
	}
	return activity.ActorAnonymous
}
