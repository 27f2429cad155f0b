package http

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/go-kit/log"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"go-currency-converter/convert"
	"go-currency-converter/domain"
	"go-currency-converter/form"
	"go-currency-converter/ratetable"
)

// Status reports the state of the rate table's one-shot load
type Status interface {
	Loaded() bool
	Err() error
}

// Server dependencies for HTTP Server functions
type Server struct {
	Service convert.Service
	Table   ratetable.Table
	// Status optional, absent for the built-in table
	Status Status
	Logger log.Logger
	router *mux.Router
}

func NewServer(s convert.Service, table ratetable.Table, status Status, logger log.Logger) *Server {
	server := &Server{
		Service: s,
		Table:   table,
		Status:  status,
		Logger:  logger,
		router:  mux.NewRouter(),
	}
	server.routes()
	return server
}

func (s *Server) routes() {
	s.router.Use(s.requestID)
	s.router.Handle("/api/convert", s.convert()).Methods(http.MethodPost)
	s.router.Handle("/api/swap", s.swap()).Methods(http.MethodPost)
	s.router.Handle("/api/form", s.form()).Methods(http.MethodPost)
	s.router.Handle("/api/currencies", s.currencies()).Methods(http.MethodGet)
	s.router.Handle("/api/status", s.status()).Methods(http.MethodGet)
}

func (s *Server) ServeHTTP(rw http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(rw, r)
}

// requestID tags every request with an id, echoed in the X-Request-Id header and the access log
func (s *Server) requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(rw http.ResponseWriter, r *http.Request) {
		id := r.Header.Get("X-Request-Id")
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
		}
		rw.Header().Set("X-Request-Id", id)

		defer func(begin time.Time) {
			s.Logger.Log("request_id", id, "method", r.Method, "path", r.URL.Path, "took", time.Since(begin))
		}(time.Now())
		next.ServeHTTP(rw, r)
	})
}

// amount accepts either a JSON string or a JSON number and keeps the raw text
type amount string

func (a *amount) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '"' {
		var text string
		if err := json.Unmarshal(b, &text); err != nil {
			return err
		}
		*a = amount(text)
		return nil
	}
	if bytes.Equal(b, []byte("null")) {
		*a = ""
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*a = amount(n)
	return nil
}

// convert produces HTTP handler for currency conversions
func (s *Server) convert() http.HandlerFunc {

	// request for unmarshalling JSON requests posted by clients
	type request struct {
		FromCurrency domain.Currency `json:"from"`
		ToCurrency   domain.Currency `json:"to"`
		Amount       amount          `json:"amount"`
	}

	// response for marshalling JSON responses to return to clients
	type response struct {
		Rate     domain.Rate     `json:"rate"`
		Amount   string          `json:"amount"`
		Currency domain.Currency `json:"currency"`
		Display  string          `json:"display"`
	}

	return func(rw http.ResponseWriter, r *http.Request) {
		var req request
		if !decode(rw, r, &req) {
			return
		}

		result, err := s.Service.Convert(r.Context(), string(req.Amount), req.FromCurrency, req.ToCurrency)
		if err != nil {
			writeError(rw, statusFor(err), domain.Message(err))
			return
		}

		writeJSON(rw, http.StatusOK, response{
			Rate:     result.Rate,
			Amount:   result.Amount.StringFixed(2),
			Currency: result.Currency,
			Display:  result.String(),
		})
	}
}

type pair struct {
	From domain.Currency `json:"from"`
	To   domain.Currency `json:"to"`
}

func (s *Server) swap() http.HandlerFunc {
	return func(rw http.ResponseWriter, r *http.Request) {
		var req pair
		if !decode(rw, r, &req) {
			return
		}
		from, to := domain.Swap(req.From, req.To)
		writeJSON(rw, http.StatusOK, pair{From: from, To: to})
	}
}

// form applies one action to a form state posted by the client and returns the new state
func (s *Server) form() http.HandlerFunc {

	type state struct {
		Amount amount          `json:"amount"`
		Base   domain.Currency `json:"base"`
		Target domain.Currency `json:"target"`
		Result string          `json:"result"`
		Dark   bool            `json:"dark"`
		Theme  string          `json:"theme,omitempty"`
	}

	type request struct {
		Action string `json:"action"`
		State  *state `json:"state"`
	}

	return func(rw http.ResponseWriter, r *http.Request) {
		var req request
		if !decode(rw, r, &req) {
			return
		}

		current := form.New()
		if req.State != nil {
			current = form.State{
				Amount: string(req.State.Amount),
				Base:   req.State.Base,
				Target: req.State.Target,
				Result: req.State.Result,
				Dark:   req.State.Dark,
			}
		}

		var next form.State
		switch req.Action {
		case "convert":
			next = form.Convert(r.Context(), s.Service, current)
		case "swap":
			next = form.Swap(current)
		case "toggle_theme":
			next = form.ToggleTheme(current)
		case "", "reset":
			next = form.New()
		default:
			writeError(rw, http.StatusBadRequest, "unknown action")
			return
		}

		writeJSON(rw, http.StatusOK, state{
			Amount: amount(next.Amount),
			Base:   next.Base,
			Target: next.Target,
			Result: next.Result,
			Dark:   next.Dark,
			Theme:  next.ThemeName(),
		})
	}
}

func (s *Server) currencies() http.HandlerFunc {
	type response struct {
		Currencies []domain.Currency `json:"currencies"`
	}
	return func(rw http.ResponseWriter, r *http.Request) {
		writeJSON(rw, http.StatusOK, response{Currencies: s.Table.Currencies()})
	}
}

func (s *Server) status() http.HandlerFunc {
	type response struct {
		Loaded bool   `json:"loaded"`
		Error  string `json:"error,omitempty"`
	}
	return func(rw http.ResponseWriter, r *http.Request) {
		if s.Status == nil {
			writeJSON(rw, http.StatusOK, response{Loaded: true})
			return
		}
		res := response{Loaded: s.Status.Loaded()}
		if err := s.Status.Err(); err != nil {
			res.Error = domain.Message(err)
		}
		writeJSON(rw, http.StatusOK, res)
	}
}

// maxBodyBytes caps request bodies, every valid request is far smaller
const maxBodyBytes = 1 << 20

func decode(rw http.ResponseWriter, r *http.Request, v interface{}) bool {
	defer r.Body.Close()

	body, err := io.ReadAll(http.MaxBytesReader(rw, r.Body, maxBodyBytes))
	if err != nil {
		writeError(rw, http.StatusBadRequest, "invalid request")
		return false
	}
	if err := json.Unmarshal(body, v); err != nil {
		writeError(rw, http.StatusBadRequest, "invalid json")
		return false
	}
	return true
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrRatesUnavailable):
		return http.StatusServiceUnavailable
	case errors.Is(err, domain.ErrInvalidAmount), errors.Is(err, domain.ErrUnsupportedPair):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func writeError(rw http.ResponseWriter, code int, msg string) {
	writeJSON(rw, code, struct {
		Error string `json:"error"`
	}{msg})
}

func writeJSON(rw http.ResponseWriter, code int, v interface{}) {
	rw.Header().Set("Content-Type", "application/json")
	rw.WriteHeader(code)
	_ = json.NewEncoder(rw).Encode(v)
}
