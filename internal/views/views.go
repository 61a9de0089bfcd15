package views

import (
	"bytes"
	"context"
	"embed"
	"errors"
	"html/template"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"reservas/internal/auth"
	"reservas/internal/client"
	"reservas/internal/db"
	"reservas/internal/entities"
	"reservas/internal/service"

	"github.com/gorilla/mux"
)

//go:embed templates/*.html
var templateFS embed.FS

// ReservationAPI is implemented by client.Client.
type ReservationAPI interface {
	ListReservations(ctx context.Context) ([]db.Reservation, error)
	GetReservation(ctx context.Context, id int64) (*db.Reservation, error)
	CreateReservation(ctx context.Context, req entities.CreateReservationRequest) (*db.Reservation, error)
	UpdateReservation(ctx context.Context, id int64, req entities.UpdateReservationRequest) (*db.Reservation, error)
	DeleteReservation(ctx context.Context, id int64) (*db.Reservation, error)
}

type Handler struct {
	API        ReservationAPI
	Auth       service.AdminAuthService
	SessionTTL time.Duration
	Location   *time.Location

	pages map[string]*template.Template
}

type formValues struct {
	ClientName string
	PartySize  string
	Date       string
	Time       string
	Status     string
}

type pageData struct {
	Title    string
	LoggedIn bool
	Email    string
	Error    string
	Success  string

	Statuses     []db.Status
	Reservations []db.Reservation
	Filter       string
	Details      *db.Reservation
	Selected     *db.Reservation
	Confirm      *db.Reservation
	Form         formValues
}

func New(api ReservationAPI, authSvc service.AdminAuthService, sessionTTL time.Duration, loc *time.Location) (*Handler, error) {
	if loc == nil {
		loc = time.UTC
	}
	h := &Handler{API: api, Auth: authSvc, SessionTTL: sessionTTL, Location: loc}

	funcs := template.FuncMap{
		"fmtDate":   func(t time.Time) string { return t.In(loc).Format("02/01/2006 15:04") },
		"dateInput": func(t time.Time) string { return t.In(loc).Format("2006-01-02") },
		"timeInput": func(t time.Time) string { return t.In(loc).Format("15:04") },
	}
	h.pages = make(map[string]*template.Template)
	for _, page := range []string{"login", "dashboard", "list", "create", "update", "update_status", "delete"} {
		tmpl, err := template.New(page).Funcs(funcs).ParseFS(templateFS, "templates/layout.html", "templates/"+page+".html")
		if err != nil {
			return nil, err
		}
		h.pages[page] = tmpl
	}
	return h, nil
}

// Register mounts the login gate and the session-protected pages on r.
func (h *Handler) Register(r *mux.Router) {
	r.HandleFunc("/", h.LoginPage).Methods(http.MethodGet)
	r.HandleFunc("/login", h.Login).Methods(http.MethodPost)
	r.HandleFunc("/logout", h.Logout).Methods(http.MethodGet)

	protected := r.NewRoute().Subrouter()
	protected.Use(auth.SessionMiddleware(h.Auth, "/"))
	protected.HandleFunc("/dashboard", h.Dashboard).Methods(http.MethodGet)
	protected.HandleFunc("/list", h.List).Methods(http.MethodGet)
	protected.HandleFunc("/create", h.CreatePage).Methods(http.MethodGet)
	protected.HandleFunc("/create", h.Create).Methods(http.MethodPost)
	protected.HandleFunc("/update", h.UpdatePage).Methods(http.MethodGet)
	protected.HandleFunc("/update", h.Update).Methods(http.MethodPost)
	protected.HandleFunc("/update-status", h.UpdateStatusPage).Methods(http.MethodGet)
	protected.HandleFunc("/update-status", h.UpdateStatus).Methods(http.MethodPost)
	protected.HandleFunc("/delete", h.DeletePage).Methods(http.MethodGet)
	protected.HandleFunc("/delete", h.Delete).Methods(http.MethodPost)
}

func (h *Handler) LoginPage(w http.ResponseWriter, r *http.Request) {
	if _, err := h.Auth.VerifyToken(auth.TokenFromRequest(r)); err == nil {
		http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
		return
	}
	h.render(w, r, http.StatusOK, "login", &pageData{Title: "Iniciar sesión"})
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.render(w, r, http.StatusBadRequest, "login", &pageData{Title: "Iniciar sesión", Error: "Formulario inválido"})
		return
	}
	email := strings.TrimSpace(r.PostFormValue("email"))
	password := r.PostFormValue("password")

	token, err := h.Auth.Login(r.Context(), email, password)
	if err != nil {
		data := &pageData{Title: "Iniciar sesión", Email: email, Error: "Credenciales inválidas"}
		status := http.StatusUnauthorized
		if !errors.Is(err, service.ErrInvalidCredentials) {
			log.Printf("Error during login for %s: %v", email, err)
			data.Error = "No se pudo iniciar sesión, intente nuevamente"
			status = http.StatusInternalServerError
		}
		h.render(w, r, status, "login", data)
		return
	}
	auth.SetSessionCookie(w, token, h.SessionTTL)
	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}

func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	auth.ClearSessionCookie(w)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *Handler) Dashboard(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, "dashboard", h.page(r, "Panel"))
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	data := h.page(r, "Reservas")
	data.Filter = normalizeFilter(r.URL.Query().Get("status"))

	all, err := h.API.ListReservations(r.Context())
	if err != nil {
		data.Error = errorMessage(err)
	}
	data.Reservations = FilterByStatus(all, data.Filter)

	if raw := r.URL.Query().Get("details"); raw != "" {
		if id, ok := parseID(raw); !ok {
			data.Error = "ID de reserva inválido"
		} else if res, err := h.API.GetReservation(r.Context(), id); err != nil {
			data.Error = reservationError(err, id)
		} else {
			data.Details = res
		}
	}
	h.render(w, r, http.StatusOK, "list", data)
}

func (h *Handler) CreatePage(w http.ResponseWriter, r *http.Request) {
	data := h.page(r, "Nueva reserva")
	data.Form.Status = string(db.StatusPending)
	h.render(w, r, http.StatusOK, "create", data)
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	data := h.page(r, "Nueva reserva")
	if err := r.ParseForm(); err != nil {
		data.Error = "Formulario inválido"
		h.render(w, r, http.StatusBadRequest, "create", data)
		return
	}
	data.Form = formValues{
		ClientName: strings.TrimSpace(r.PostFormValue("clientName")),
		PartySize:  strings.TrimSpace(r.PostFormValue("partySize")),
		Date:       strings.TrimSpace(r.PostFormValue("date")),
		Time:       strings.TrimSpace(r.PostFormValue("time")),
		Status:     strings.TrimSpace(r.PostFormValue("status")),
	}

	req := entities.CreateReservationRequest{
		ClientName: data.Form.ClientName,
		Date:       combineDateTime(data.Form.Date, data.Form.Time),
		Status:     data.Form.Status,
	}
	if data.Form.PartySize != "" {
		size, err := strconv.Atoi(data.Form.PartySize)
		if err != nil {
			data.Error = "La cantidad de comensales debe ser un número"
			h.render(w, r, http.StatusOK, "create", data)
			return
		}
		req.PartySize = size
	}

	res, err := h.API.CreateReservation(r.Context(), req)
	if err != nil {
		data.Error = errorMessage(err)
		h.render(w, r, http.StatusOK, "create", data)
		return
	}
	data.Success = "Reserva creada con id " + strconv.FormatInt(res.ID, 10)
	data.Form = formValues{Status: string(db.StatusPending)}
	h.render(w, r, http.StatusOK, "create", data)
}

func (h *Handler) UpdatePage(w http.ResponseWriter, r *http.Request) {
	data := h.page(r, "Modificar reserva")
	h.loadSelection(r, data, r.URL.Query().Get("id"))
	h.render(w, r, http.StatusOK, "update", data)
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	data := h.page(r, "Modificar reserva")
	if err := r.ParseForm(); err != nil {
		data.Error = "Formulario inválido"
		h.render(w, r, http.StatusBadRequest, "update", data)
		return
	}
	id, ok := parseID(r.PostFormValue("id"))
	if !ok {
		data.Error = "Seleccione una reserva"
		h.loadSelection(r, data, "")
		h.render(w, r, http.StatusOK, "update", data)
		return
	}

	var req entities.UpdateReservationRequest
	if v := strings.TrimSpace(r.PostFormValue("clientName")); v != "" {
		req.ClientName = &v
	}
	if v := strings.TrimSpace(r.PostFormValue("partySize")); v != "" {
		size, err := strconv.Atoi(v)
		if err != nil {
			data.Error = "La cantidad de comensales debe ser un número"
			h.loadSelection(r, data, r.PostFormValue("id"))
			h.render(w, r, http.StatusOK, "update", data)
			return
		}
		req.PartySize = &size
	}
	if v := combineDateTime(strings.TrimSpace(r.PostFormValue("date")), strings.TrimSpace(r.PostFormValue("time"))); v != "" {
		req.Date = &v
	}
	if v := strings.TrimSpace(r.PostFormValue("status")); v != "" {
		req.Status = &v
	}

	if _, err := h.API.UpdateReservation(r.Context(), id, req); err != nil {
		data.Error = reservationError(err, id)
	} else {
		data.Success = "Reserva #" + strconv.FormatInt(id, 10) + " actualizada"
	}
	h.loadSelection(r, data, r.PostFormValue("id"))
	h.render(w, r, http.StatusOK, "update", data)
}

func (h *Handler) UpdateStatusPage(w http.ResponseWriter, r *http.Request) {
	data := h.page(r, "Cambiar estado")
	h.loadSelection(r, data, r.URL.Query().Get("id"))
	h.render(w, r, http.StatusOK, "update_status", data)
}

func (h *Handler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	data := h.page(r, "Cambiar estado")
	if err := r.ParseForm(); err != nil {
		data.Error = "Formulario inválido"
		h.render(w, r, http.StatusBadRequest, "update_status", data)
		return
	}
	id, ok := parseID(r.PostFormValue("id"))
	status := strings.TrimSpace(r.PostFormValue("status"))
	switch {
	case !ok:
		data.Error = "Seleccione una reserva"
	case status == "":
		data.Error = "Seleccione un estado"
	default:
		if res, err := h.API.UpdateReservation(r.Context(), id, entities.UpdateReservationRequest{Status: &status}); err != nil {
			data.Error = reservationError(err, id)
		} else {
			data.Success = "Reserva #" + strconv.FormatInt(res.ID, 10) + " ahora está " + string(res.Status)
		}
	}
	h.loadSelection(r, data, r.PostFormValue("id"))
	h.render(w, r, http.StatusOK, "update_status", data)
}

func (h *Handler) DeletePage(w http.ResponseWriter, r *http.Request) {
	data := h.page(r, "Eliminar reserva")
	if raw := r.URL.Query().Get("confirm"); raw != "" {
		if id, ok := parseID(raw); !ok {
			data.Error = "ID de reserva inválido"
		} else if res, err := h.API.GetReservation(r.Context(), id); err != nil {
			data.Error = reservationError(err, id)
		} else {
			data.Confirm = res
		}
	}
	h.loadList(r, data)
	h.render(w, r, http.StatusOK, "delete", data)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	data := h.page(r, "Eliminar reserva")
	if err := r.ParseForm(); err != nil {
		data.Error = "Formulario inválido"
		h.render(w, r, http.StatusBadRequest, "delete", data)
		return
	}
	if id, ok := parseID(r.PostFormValue("id")); !ok {
		data.Error = "ID de reserva inválido"
	} else if res, err := h.API.DeleteReservation(r.Context(), id); err != nil {
		data.Error = reservationError(err, id)
	} else {
		data.Success = "Reserva #" + strconv.FormatInt(res.ID, 10) + " eliminada"
	}
	h.loadList(r, data)
	h.render(w, r, http.StatusOK, "delete", data)
}

func (h *Handler) page(r *http.Request, title string) *pageData {
	data := &pageData{Title: title, LoggedIn: true, Statuses: db.Statuses}
	if claims, ok := auth.ClaimsFromContext(r.Context()); ok {
		data.Email = claims.Email
	}
	return data
}

func (h *Handler) loadList(r *http.Request, data *pageData) {
	list, err := h.API.ListReservations(r.Context())
	if err != nil {
		if data.Error == "" {
			data.Error = errorMessage(err)
		}
		return
	}
	data.Reservations = list
}

// loadSelection fills the selector and, when rawID names a reservation, the form.
func (h *Handler) loadSelection(r *http.Request, data *pageData, rawID string) {
	h.loadList(r, data)
	if rawID == "" {
		return
	}
	id, ok := parseID(rawID)
	if !ok {
		return
	}
	for i := range data.Reservations {
		if data.Reservations[i].ID == id {
			data.Selected = &data.Reservations[i]
			return
		}
	}
}

func (h *Handler) render(w http.ResponseWriter, r *http.Request, status int, page string, data *pageData) {
	tmpl, ok := h.pages[page]
	if !ok {
		log.Printf("Unknown page %q", page)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "layout", data); err != nil {
		log.Printf("Error rendering %s for %s: %v", page, r.URL.Path, err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		log.Printf("Error writing %s: %v", page, err)
	}
}

func normalizeFilter(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" || strings.EqualFold(raw, "all") {
		return "all"
	}
	if st, ok := db.ParseStatusFold(raw); ok {
		return string(st)
	}
	return raw
}

// combineDateTime joins the separate date and time inputs as date + "T" + time.
func combineDateTime(date, clock string) string {
	if date == "" {
		return ""
	}
	if clock == "" {
		return date
	}
	return date + "T" + clock
}

func parseID(raw string) (int64, bool) {
	id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// reservationError is errorMessage for calls that target a single reservation.
func reservationError(err error, id int64) string {
	if client.IsNotFound(err) {
		return "La reserva #" + strconv.FormatInt(id, 10) + " no existe"
	}
	return errorMessage(err)
}

func errorMessage(err error) string {
	var apiErr *client.APIError
	if errors.As(err, &apiErr) {
		if apiErr.Message != "" {
			return apiErr.Message
		}
		return "La API respondió con estado " + strconv.Itoa(apiErr.StatusCode)
	}
	log.Printf("Error calling reservations API: %v", err)
	return "No se pudo contactar con la API de reservas"
}
