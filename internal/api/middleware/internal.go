package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/m04kA/blitz-booking/internal/api/handlers"
	"github.com/m04kA/blitz-booking/internal/domain"
)

const msgInvalidCronToken = "отсутствует или некорректен заголовок X-Cron-Token"

// InternalToken пропускает только запросы с секретом cron в заголовке X-Cron-Token
// Пустой token закрывает маршруты полностью
func InternalToken(token string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got := r.Header.Get(domain.CronTokenHeader)
			if token == "" || subtle.ConstantTimeCompare([]byte(got), []byte(token)) != 1 {
				handlers.RespondUnauthorized(w, msgInvalidCronToken)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
