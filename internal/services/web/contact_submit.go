package web

import (
	"errors"
	"log"
	"net/http"

	"github.com/sinhaparth5/portfolio/internal/services/web/contact"
	webi18n "github.com/sinhaparth5/portfolio/internal/services/web/i18n"
	apperrors "github.com/sinhaparth5/portfolio/internal/services/web/platform/errors"
	"github.com/sinhaparth5/portfolio/internal/services/web/platform/httpx"
	"github.com/sinhaparth5/portfolio/internal/services/web/platform/weberror"
	webtemplates "github.com/sinhaparth5/portfolio/internal/services/web/templates"
)

// contactResult is the JSON body answered to script-driven submissions.
type contactResult struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

// handleContact validates the token before anything else: a rejected token
// never reaches the mailer.
func (h *handler) handleContact(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxContactBody)
	err := r.ParseForm()
	if err != nil {
		err = formParseError(err)
	} else if err = h.guard.Check(r); err == nil {
		err = h.contact.Submit(httpx.RequestContext(r), contact.ParseForm(r))
	}

	loc, _ := webi18n.ForRequest(r)
	message := weberror.PublicMessage(loc, err)
	status := weberror.SubmissionStatus(err)

	if httpx.WantsJSON(r) {
		if writeErr := httpx.WriteJSON(w, status, contactResult{Success: err == nil, Error: message}); writeErr != nil {
			log.Printf("write contact response failed err=%v", writeErr)
		}
		return
	}

	token, tokenErr := h.guard.Ensure(w, r)
	if tokenErr != nil {
		log.Printf("csrf token issue failed err=%v", tokenErr)
		h.writeError(w, r, http.StatusInternalServerError)
		return
	}
	view := webtemplates.ContactView{Token: token, Sent: err == nil, Error: message}
	if err != nil {
		form := contact.ParseForm(r)
		view.Name, view.Email, view.Subject, view.Message = form.Name, form.Email, form.Subject, form.Message
	}
	h.renderHome(w, r, status, view)
}

func formParseError(err error) error {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return apperrors.Wrap(apperrors.KindInvalidInput, contact.KeyFieldTooLong, "One of the fields is too long.", err)
	}
	return apperrors.Wrap(apperrors.KindInvalidInput, contact.KeyFieldRequired, "Please fill in every field.", err)
}
