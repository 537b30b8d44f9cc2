package dashboard

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"pet-welfare-dashboard/internal/domain/animals"
	"pet-welfare-dashboard/internal/platform/httpclient"

	"github.com/go-chi/chi/v5"
)

// RegisterRoutes monta la API que consume el navegador.
func RegisterRoutes(r chi.Router, o *Orchestrator) {
	r.Route("/dashboard", func(r chi.Router) {
		r.Get("/", getViewHandler(o))
		r.Put("/filters", setFiltersHandler(o))
		r.Post("/refresh", refreshHandler(o))

		r.Post("/welfare/run", runWelfareHandler(o))
		r.Post("/adoption/run", runAdoptionHandler(o))

		r.Post("/animals", submitAnimalHandler(o))
		r.Delete("/animals/{animalID}", deleteAnimalHandler(o))
	})
}

type setFiltersRequest struct {
	Species        *string `json:"species,omitempty"`
	WelfareSpecies *string `json:"welfareSpecies,omitempty"`
	AdoptionState  *string `json:"adoptionState,omitempty"`
}

type formResponse struct {
	FormStatus string `json:"formStatus"`
	View       View   `json:"view"`
}

// getViewHandler godoc
// @Summary Estado consolidado del dashboard
// @Tags dashboard
// @Produce json
// @Success 200 {object} View
// @Router /dashboard [get]
func getViewHandler(o *Orchestrator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, o.View())
	}
}

// setFiltersHandler godoc
// @Summary Cambiar filtros
// @Description Solo actualiza la selección. El filtro de especie de la lista se aplica al instante;
// @Description welfare y adopciones se consultan con los endpoints /run.
// @Tags dashboard
// @Accept json
// @Produce json
// @Param payload body setFiltersRequest true "Filtros (campos omitidos no cambian)"
// @Success 200 {object} View
// @Failure 400 {string} string "invalid json"
// @Router /dashboard/filters [put]
func setFiltersHandler(o *Orchestrator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req setFiltersRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}
		if req.Species != nil {
			o.SetSpeciesFilter(*req.Species)
		}
		if req.WelfareSpecies != nil {
			o.SetWelfareSpecies(*req.WelfareSpecies)
		}
		if req.AdoptionState != nil {
			o.SetAdoptionState(*req.AdoptionState)
		}
		writeJSON(w, http.StatusOK, o.View())
	}
}

// refreshHandler godoc
// @Summary Recargar lista y conteo por especie
// @Tags dashboard
// @Produce json
// @Success 200 {object} View
// @Router /dashboard/refresh [post]
func refreshHandler(o *Orchestrator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := o.Mount(r.Context()); err != nil {
			// el cliente cortó; las cargas siguen y llegan por /ws
			return
		}
		writeJSON(w, http.StatusOK, o.View())
	}
}

// runWelfareHandler godoc
// @Summary Consultar seguimientos de bienestar con la especie seleccionada
// @Tags dashboard
// @Produce json
// @Success 200 {object} View
// @Router /dashboard/welfare/run [post]
func runWelfareHandler(o *Orchestrator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !await(r.Context(), o.RunWelfareQuery(r.Context())) {
			return
		}
		writeJSON(w, http.StatusOK, o.View())
	}
}

// runAdoptionHandler godoc
// @Summary Consultar adopciones con el estado seleccionado
// @Tags dashboard
// @Produce json
// @Success 200 {object} View
// @Router /dashboard/adoption/run [post]
func runAdoptionHandler(o *Orchestrator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !await(r.Context(), o.RunAdoptionQuery(r.Context())) {
			return
		}
		writeJSON(w, http.StatusOK, o.View())
	}
}

// submitAnimalHandler godoc
// @Summary Enviar el formulario de alta
// @Description Los campos llegan como texto. Falta alguno => 400 "Please fill in all fields.".
// @Tags dashboard
// @Accept json
// @Produce json
// @Param payload body AnimalForm true "Formulario"
// @Success 201 {object} formResponse
// @Failure 400 {object} formResponse
// @Failure 409 {object} formResponse
// @Failure 502 {object} formResponse
// @Router /dashboard/animals [post]
func submitAnimalHandler(o *Orchestrator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var form AnimalForm
		if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		status := http.StatusCreated
		if err := o.SubmitAnimal(r.Context(), form); err != nil {
			status = statusFor(err)
		}
		v := o.View()
		writeJSON(w, status, formResponse{FormStatus: v.FormStatus, View: v})
	}
}

// deleteAnimalHandler godoc
// @Summary Borrar animal
// @Description Requiere confirm=true; sin confirmación no se llama al backend.
// @Tags dashboard
// @Produce json
// @Param animalID path int true "AnimalID"
// @Param confirm query bool false "Confirmación del usuario"
// @Success 200 {object} View
// @Failure 400 {string} string "id inválido"
// @Failure 404 {string} string "animal not found"
// @Failure 428 {string} string "delete not confirmed"
// @Failure 502 {string} string "backend error"
// @Router /dashboard/animals/{animalID} [delete]
func deleteAnimalHandler(o *Orchestrator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.Atoi(chi.URLParam(r, "animalID"))
		if err != nil {
			http.Error(w, "animal id must be an integer", http.StatusBadRequest)
			return
		}
		confirmed, _ := strconv.ParseBool(r.URL.Query().Get("confirm"))

		if err := o.DeleteAnimal(r.Context(), id, Confirmed(confirmed)); err != nil {
			switch status := statusFor(err); status {
			case http.StatusNotFound:
				http.Error(w, "animal not found", status)
			default:
				http.Error(w, err.Error(), status)
			}
			return
		}
		writeJSON(w, http.StatusOK, o.View())
	}
}

// statusFor traduce errores de validación y del backend remoto a status HTTP.
func statusFor(err error) int {
	var verr *animals.ValidationError
	var herr *httpclient.HTTPError
	switch {
	case errors.As(err, &verr), errors.Is(err, ErrInvalidForm):
		return http.StatusBadRequest
	case errors.Is(err, ErrNotConfirmed):
		return http.StatusPreconditionRequired
	case errors.As(err, &herr):
		// 4xx del backend es culpa del input; se propaga tal cual
		if herr.StatusCode >= 400 && herr.StatusCode < 500 {
			return herr.StatusCode
		}
		return http.StatusBadGateway
	default:
		return http.StatusBadGateway
	}
}

func await(ctx context.Context, done <-chan struct{}) bool {
	select {
	case <-done:
		return true
	case <-ctx.Done():
		return false
	}
}

// writeJSON está duplicado intencionalmente en handlers de distintos módulos (animals/dashboard)
// para evitar crear paquetes/helpers compartidos demasiado pronto.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
