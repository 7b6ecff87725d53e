package shared

import (
	"encoding/base64"
	"encoding/json"
	"net/http"
)

// FlashCookieName is the cookie carrying the one-shot status message.
const FlashCookieName = "taskdeck_flash"

// Flash message categories shown on the next rendered page.
const (
	FlashSuccess = "success"
	FlashInfo    = "info"
	FlashWarning = "warning"
	FlashDanger  = "danger"
)

// Flash is a one-time, categorized, user-visible status message. It is
// set on a redirect and consumed by the next rendered page.
type Flash struct {
	Message  string `json:"message"`
	Category string `json:"category"`
}

// SetFlash stores a flash message in the flash cookie. The payload is
// base64-encoded JSON; it carries no secrets and is not signed.
func SetFlash(w http.ResponseWriter, message, category string) {
	payload, err := json.Marshal(Flash{Message: message, Category: category})
	if err != nil {
		// A struct of two strings cannot fail to marshal; drop the flash.
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     FlashCookieName,
		Value:    base64.URLEncoding.EncodeToString(payload),
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// PopFlash reads and clears the flash cookie.
// Returns nil when there is no flash or it does not decode.
func PopFlash(w http.ResponseWriter, r *http.Request) *Flash {
	cookie, err := r.Cookie(FlashCookieName)
	if err != nil {
		return nil
	}

	// Clear the cookie regardless of whether the payload decodes.
	http.SetCookie(w, &http.Cookie{
		Name:     FlashCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	payload, err := base64.URLEncoding.DecodeString(cookie.Value)
	if err != nil {
		return nil
	}

	var flash Flash
	if err := json.Unmarshal(payload, &flash); err != nil {
		return nil
	}

	return &flash
}
