package middleware

import "net/http"

// TelegramSecret rejects webhook calls missing the secret token Telegram
// echoes back when one was set on the webhook. Empty secret disables the
// check.
func TelegramSecret(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if secret != "" && r.Header.Get("X-Telegram-Bot-Api-Secret-Token") != secret {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
