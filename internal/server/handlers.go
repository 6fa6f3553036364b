package server

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/limaJavier/handbook/pkg/handbook"
	"github.com/limaJavier/handbook/pkg/requirements"
	"github.com/samber/lo"
	log "github.com/sirupsen/logrus"
)

type handbookHandler struct {
	book *handbook.Handbook
}

type eligibleRequest struct {
	Taken []string `json:"taken"`
	WAM   *uint8   `json:"wam"`
}

type progressRequest struct {
	Specs []string `json:"specs"`
	Taken []string `json:"taken"`
}

type requirementsResponse struct {
	Raw          string `json:"raw"`
	Requirements string `json:"requirements,omitempty"`
	Error        string `json:"error,omitempty"`
}

func (h *handbookHandler) getCourse(w http.ResponseWriter, r *http.Request) {
	respond(w, h.book.CourseInfo(chi.URLParam(r, "code")))
}

func (h *handbookHandler) getProgram(w http.ResponseWriter, r *http.Request) {
	respond(w, h.book.ProgramInfo(chi.URLParam(r, "code")))
}

// getProgramStructure expands every specialisation unless spec parameters are given
func (h *handbookHandler) getProgramStructure(w http.ResponseWriter, r *http.Request) {
	var specs []string
	if query := r.URL.Query(); query.Has("spec") {
		specs = lo.Compact(query["spec"])
	}
	respond(w, h.book.ProgramAndSpecInfo(chi.URLParam(r, "code"), specs))
}

func (h *handbookHandler) getProgramCourses(w http.ResponseWriter, r *http.Request) {
	respond(w, h.book.ProgramCourseCodes(chi.URLParam(r, "code")))
}

func (h *handbookHandler) postEligible(w http.ResponseWriter, r *http.Request) {
	var request eligibleRequest
	if !decode(w, r, &request) {
		return
	}
	respond(w, h.book.EligibleCourses(chi.URLParam(r, "code"), request.Taken, request.WAM))
}

func (h *handbookHandler) postProgress(w http.ResponseWriter, r *http.Request) {
	var request progressRequest
	if !decode(w, r, &request) {
		return
	}
	respond(w, h.book.Progress(chi.URLParam(r, "code"), request.Specs, request.Taken))
}

// getRequirements previews how a requirement text is understood
func (h *handbookHandler) getRequirements(w http.ResponseWriter, r *http.Request) {
	text := r.URL.Query().Get("text")
	response := requirementsResponse{Raw: text}

	parsed, err := requirements.New(text)
	if err != nil {
		response.Error = err.Error()
		write(w, http.StatusUnprocessableEntity, response)
		return
	}
	response.Requirements = parsed.String()
	write(w, http.StatusOK, response)
}

func decode(w http.ResponseWriter, r *http.Request, request any) bool {
	if err := json.NewDecoder(r.Body).Decode(request); err != nil {
		log.WithField("error", err).Debug("malformed request body")
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return false
	}
	return true
}

// respond writes the result as JSON, or 404 when the handbook returned nothing
func respond[T any](w http.ResponseWriter, result T) {
	if lo.IsNil(result) {
		http.Error(w, http.StatusText(http.StatusNotFound), http.StatusNotFound)
		return
	}
	write(w, http.StatusOK, result)
}

func write(w http.ResponseWriter, status int, body any) {
	bytes, err := json.Marshal(body)
	if err != nil {
		log.WithField("error", err).Error("cannot marshal response")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(bytes)
}
