package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"mime"
	"net/http"
	"strings"

	"github.com/hongminglow/ideax-be/internal/http/respond"
	"github.com/hongminglow/ideax-be/internal/identity"
	"github.com/hongminglow/ideax-be/internal/middleware"
	"github.com/hongminglow/ideax-be/internal/models/dto"
)

const (
	maxBodyBytes = 64 << 10
	maxFormBytes = 1 << 20
)

// Registrar is the registration workflow the handler delegates to.
type Registrar interface {
	RegisterStartup(ctx context.Context, req dto.StartupSignUpRequest) (dto.SignUpResponse, error)
	RegisterInvestor(ctx context.Context, req dto.InvestorSignUpRequest) (dto.SignUpResponse, error)
}

// SignUpHandler owns the startup and investor sign-up endpoints.
type SignUpHandler struct {
	svc Registrar
	log *slog.Logger
}

// NewSignUpHandler constructs the handler.
func NewSignUpHandler(svc Registrar, log *slog.Logger) *SignUpHandler {
	if log == nil {
		log = slog.Default()
	}
	return &SignUpHandler{svc: svc, log: log}
}

// Register attaches sign-up routes to the mux.
func (h *SignUpHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("/api/auth/signup/startup", h.handleStartup)
	mux.HandleFunc("/api/auth/signup/investor", h.handleInvestor)
}

func (h *SignUpHandler) handleStartup(w http.ResponseWriter, r *http.Request) {
	var req dto.StartupSignUpRequest
	if isForm(r) {
		if !decodeStartupForm(w, r, &req) {
			return
		}
	} else if !decode(w, r, &req) {
		return
	}
	resp, err := h.svc.RegisterStartup(r.Context(), req)
	h.finish(w, r, resp, err)
}

func (h *SignUpHandler) handleInvestor(w http.ResponseWriter, r *http.Request) {
	var req dto.InvestorSignUpRequest
	if !decode(w, r, &req) {
		return
	}
	resp, err := h.svc.RegisterInvestor(r.Context(), req)
	h.finish(w, r, resp, err)
}

func (h *SignUpHandler) finish(w http.ResponseWriter, r *http.Request, resp dto.SignUpResponse, err error) {
	if err == nil {
		respond.JSON(w, http.StatusCreated, "account created", resp)
		return
	}
	switch {
	case errors.Is(err, identity.ErrValidation):
		field := identity.FieldOf(err)
		respond.FieldError(w, http.StatusBadRequest, field+" "+validationMessage(err), field)
	case errors.Is(err, identity.ErrDuplicateIdentity):
		respond.FieldError(w, http.StatusConflict, "account already exists", identity.FieldOf(err))
	default:
		h.log.ErrorContext(r.Context(), "sign-up failed",
			"request_id", middleware.RequestID(r.Context()), "path", r.URL.Path, "error", err)
		respond.Error(w, http.StatusInternalServerError, "failed to create account")
	}
}

func validationMessage(err error) string {
	var e *identity.Error
	if errors.As(err, &e) && e.Msg != "" {
		return e.Msg
	}
	return "is invalid"
}

func decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return false
	}
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(dst); err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid JSON payload")
		return false
	}
	return true
}

func isForm(r *http.Request) bool {
	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	return err == nil && (mediaType == "multipart/form-data" || mediaType == "application/x-www-form-urlencoded")
}

// decodeStartupForm reads the multipart form the web client submits. Only text
// fields are read; companyLogo must be a reference to an already uploaded file,
// and a file part under that name is rejected.
func decodeStartupForm(w http.ResponseWriter, r *http.Request, req *dto.StartupSignUpRequest) bool {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return false
	}
	r.Body = http.MaxBytesReader(w, r.Body, maxFormBytes)
	var err error
	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/") {
		err = r.ParseMultipartForm(maxFormBytes)
	} else {
		err = r.ParseForm()
	}
	if err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid form payload")
		return false
	}
	if r.MultipartForm != nil && len(r.MultipartForm.File["companyLogo"]) > 0 {
		respond.FieldError(w, http.StatusBadRequest, "companyLogo must be a reference, not a file", "companyLogo")
		return false
	}
	*req = dto.StartupSignUpRequest{
		FullName:           r.PostFormValue("fullName"),
		CompanyName:        r.PostFormValue("companyName"),
		Email:              r.PostFormValue("email"),
		Website:            r.PostFormValue("website"),
		CompanyLogo:        r.PostFormValue("companyLogo"),
		CompanyDescription: r.PostFormValue("companyDescription"),
		Password:           r.PostFormValue("password"),
		ConfirmPassword:    r.PostFormValue("confirmPassword"),
	}
	return true
}
