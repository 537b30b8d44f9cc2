package animals

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
)

// RegisterRoutes monta la API remota que consume el dashboard.
func RegisterRoutes(r chi.Router, svc *Service) {
	r.Get("/animals-simple", listAnimalsHandler(svc))
	r.Get("/animal-stats", speciesCountsHandler(svc))
	r.Get("/welfare-followups", welfareFollowUpsHandler(svc))
	r.Get("/adoption-stats", adoptionStatsHandler(svc))

	r.Post("/add-animal", addAnimalHandler(svc))
	r.Delete("/delete-animal/{animalID}", deleteAnimalHandler(svc))
}

type messageResponse struct {
	Message string `json:"message"`
}

// listAnimalsHandler godoc
// @Summary Listar animales
// @Tags animals
// @Produce json
// @Success 200 {array} AnimalRecord
// @Router /animals-simple [get]
func listAnimalsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.List(r.Context())
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		if items == nil {
			items = []AnimalRecord{}
		}
		writeJSON(w, http.StatusOK, items)
	}
}

// speciesCountsHandler godoc
// @Summary Cantidad de animales por especie
// @Tags stats
// @Produce json
// @Success 200 {array} SpeciesCountRow
// @Router /animal-stats [get]
func speciesCountsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rows, err := svc.SpeciesCounts(r.Context())
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		if rows == nil {
			rows = []SpeciesCountRow{}
		}
		writeJSON(w, http.StatusOK, rows)
	}
}

// welfareFollowUpsHandler godoc
// @Summary Seguimientos de bienestar (HealthScore <= 6)
// @Tags stats
// @Produce json
// @Param species query string false "Especie (omitir = todas)"
// @Success 200 {array} WelfareFollowUpRow
// @Router /welfare-followups [get]
func welfareFollowUpsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rows, err := svc.WelfareFollowUps(r.Context(), r.URL.Query().Get("species"))
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		if rows == nil {
			rows = []WelfareFollowUpRow{}
		}
		writeJSON(w, http.StatusOK, rows)
	}
}

// adoptionStatsHandler godoc
// @Summary Adopciones por estado y especie
// @Tags stats
// @Produce json
// @Param state query string false "Estado (omitir = todos)"
// @Success 200 {array} AdoptionStatRow
// @Router /adoption-stats [get]
func adoptionStatsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rows, err := svc.AdoptionStats(r.Context(), r.URL.Query().Get("state"))
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		if rows == nil {
			rows = []AdoptionStatRow{}
		}
		writeJSON(w, http.StatusOK, rows)
	}
}

// addAnimalHandler godoc
// @Summary Crear animal
// @Description AnimalID debe ser único y OrgID debe existir.
// @Tags animals
// @Accept json
// @Produce json
// @Param payload body AnimalRecord true "Animal"
// @Success 201 {object} messageResponse
// @Failure 400 {string} string "invalid json / orgId inexistente"
// @Failure 409 {string} string "AnimalID duplicado"
// @Router /add-animal [post]
func addAnimalHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req AnimalRecord
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		if err := svc.Create(r.Context(), req); err != nil {
			switch {
			case errors.Is(err, ErrInvalidInput), errors.Is(err, ErrUnknownOrg):
				http.Error(w, err.Error(), http.StatusBadRequest)
			case errors.Is(err, ErrDuplicateID):
				http.Error(w, err.Error(), http.StatusConflict)
			default:
				http.Error(w, "internal error", http.StatusInternalServerError)
			}
			return
		}

		writeJSON(w, http.StatusCreated, messageResponse{Message: "Animal added"})
	}
}

// deleteAnimalHandler godoc
// @Summary Borrar animal
// @Tags animals
// @Produce json
// @Param animalID path int true "AnimalID"
// @Success 200 {object} messageResponse
// @Failure 400 {string} string "id inválido"
// @Failure 404 {string} string "animal not found"
// @Router /delete-animal/{animalID} [delete]
func deleteAnimalHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.Atoi(chi.URLParam(r, "animalID"))
		if err != nil {
			http.Error(w, "animal id must be an integer", http.StatusBadRequest)
			return
		}

		if err := svc.Delete(r.Context(), id); err != nil {
			switch {
			case errors.Is(err, ErrInvalidInput):
				http.Error(w, err.Error(), http.StatusBadRequest)
			case errors.Is(err, ErrNotFound):
				http.Error(w, "animal not found", http.StatusNotFound)
			default:
				http.Error(w, "internal error", http.StatusInternalServerError)
			}
			return
		}

		writeJSON(w, http.StatusOK, messageResponse{Message: "Animal deleted"})
	}
}

// writeJSON está duplicado intencionalmente en handlers de distintos módulos (animals/dashboard)
// para evitar crear paquetes/helpers compartidos demasiado pronto.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
