package cart

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"ThreadLine/internal/catalog"
	"ThreadLine/pkg/kit"
	"ThreadLine/pkg/money"
)

const maxItemBody = 1 << 20

type ctxKey string

const cartKey ctxKey = "cart"

func cartFromContext(ctx context.Context) (*Cart, bool) {
	c, ok := ctx.Value(cartKey).(*Cart)
	return c, ok
}

// Server exposes the session cart API. Product references are validated
// against the catalog store before any mutation.
type Server struct {
	Sessions *Sessions
	Tokens   *TokenMaker
	Catalog  catalog.Store
	Log      *zap.Logger
}

func (s *Server) CreateSessionHandler() http.HandlerFunc { return s.createSession }
func (s *Server) ShowHandler() http.HandlerFunc          { return s.show }
func (s *Server) AddItemHandler() http.HandlerFunc       { return s.addItem }
func (s *Server) UpdateItemHandler() http.HandlerFunc    { return s.updateItem }
func (s *Server) RemoveItemHandler() http.HandlerFunc    { return s.removeItem }
func (s *Server) ClearHandler() http.HandlerFunc         { return s.clear }

// RequireSession resolves the Bearer session token into the session's cart.
func (s *Server) RequireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authz := r.Header.Get("Authorization")
		if !strings.HasPrefix(authz, "Bearer ") {
			kit.WriteError(w, r, http.StatusUnauthorized, "missing session token", "")
			return
		}

		claims, err := s.Tokens.Parse(strings.TrimPrefix(authz, "Bearer "))
		if err != nil || claims.SessionID == "" {
			kit.WriteError(w, r, http.StatusUnauthorized, "invalid session token", "")
			return
		}

		c, ok := s.Sessions.Get(claims.SessionID)
		if !ok {
			kit.WriteError(w, r, http.StatusUnauthorized, "session expired", "create a new cart session")
			return
		}

		ctx := context.WithValue(r.Context(), cartKey, c)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

type sessionPayload struct {
	SessionID string `json:"session_id"`
	Token     string `json:"token"`
}

func (s *Server) createSession(w http.ResponseWriter, r *http.Request) {
	id, _ := s.Sessions.Create()

	token, err := s.Tokens.New(id)
	if err != nil {
		if s.Log != nil {
			s.Log.Error("sign session token failed", zap.Error(err))
		}
		kit.WriteError(w, r, http.StatusInternalServerError, "server error", "")
		return
	}

	kit.WriteData(w, http.StatusCreated, sessionPayload{SessionID: id, Token: token})
}

type itemReq struct {
	ProductID string `json:"product_id"`
	Size      string `json:"size"`
	Quantity  int    `json:"quantity"`
}

var (
	errBadQuantity    = errors.New("bad quantity")
	errSizeRequired   = errors.New("size required")
	errSizeNotOffered = errors.New("size not offered")
	errUnknownProduct = errors.New("unknown product")
	errCatalogFailed  = errors.New("catalog failed")
)

func (s *Server) addItem(w http.ResponseWriter, r *http.Request) {
	c, ok := cartFromContext(r.Context())
	if !ok {
		kit.WriteError(w, r, http.StatusUnauthorized, "no session", "")
		return
	}

	req, err := decodeItemRequest(w, r)
	if err != nil {
		kit.WriteError(w, r, http.StatusBadRequest, "bad json", err.Error())
		return
	}

	p, err := s.resolveItem(r.Context(), req)
	if err != nil {
		s.writeItemError(w, r, req, err)
		return
	}

	if err := c.Add(p, req.Size, req.Quantity); err != nil {
		kit.WriteError(w, r, http.StatusBadRequest, "invalid quantity", "quantity must be at least 1")
		return
	}

	kit.WriteData(w, http.StatusCreated, cartPayloadFor(c))
}

// updateItem sets an absolute quantity; zero or below removes the line.
func (s *Server) updateItem(w http.ResponseWriter, r *http.Request) {
	c, ok := cartFromContext(r.Context())
	if !ok {
		kit.WriteError(w, r, http.StatusUnauthorized, "no session", "")
		return
	}

	req, err := decodeItemRequest(w, r)
	if err != nil {
		kit.WriteError(w, r, http.StatusBadRequest, "bad json", err.Error())
		return
	}
	if req.ProductID == "" || req.Size == "" {
		kit.WriteError(w, r, http.StatusBadRequest, "product_id and size required", "")
		return
	}

	c.SetQuantity(req.ProductID, req.Size, req.Quantity)
	kit.WriteData(w, http.StatusOK, cartPayloadFor(c))
}

func (s *Server) removeItem(w http.ResponseWriter, r *http.Request) {
	c, ok := cartFromContext(r.Context())
	if !ok {
		kit.WriteError(w, r, http.StatusUnauthorized, "no session", "")
		return
	}

	c.Remove(chi.URLParam(r, "id"), chi.URLParam(r, "size"))
	kit.WriteData(w, http.StatusOK, cartPayloadFor(c))
}

func (s *Server) clear(w http.ResponseWriter, r *http.Request) {
	c, ok := cartFromContext(r.Context())
	if !ok {
		kit.WriteError(w, r, http.StatusUnauthorized, "no session", "")
		return
	}

	c.Clear()
	kit.WriteData(w, http.StatusOK, cartPayloadFor(c))
}

func (s *Server) show(w http.ResponseWriter, r *http.Request) {
	c, ok := cartFromContext(r.Context())
	if !ok {
		kit.WriteError(w, r, http.StatusUnauthorized, "no session", "")
		return
	}

	kit.WriteData(w, http.StatusOK, cartPayloadFor(c))
}

// resolveItem validates the request against the catalog before the cart is
// touched. Validation failures leave the cart unchanged.
func (s *Server) resolveItem(ctx context.Context, req itemReq) (catalog.Product, error) {
	if req.Quantity < 1 {
		return catalog.Product{}, errBadQuantity
	}
	if req.ProductID == "" {
		return catalog.Product{}, errUnknownProduct
	}
	if req.Size == "" {
		return catalog.Product{}, errSizeRequired
	}

	p, ok, err := s.Catalog.Get(ctx, req.ProductID)
	if err != nil {
		if s.Log != nil {
			s.Log.Error("catalog lookup failed", zap.Error(err), zap.String("product_id", req.ProductID))
		}
		return catalog.Product{}, errCatalogFailed
	}
	if !ok {
		return catalog.Product{}, errUnknownProduct
	}
	if !p.HasSize(req.Size) {
		return catalog.Product{}, errSizeNotOffered
	}

	return p, nil
}

func (s *Server) writeItemError(w http.ResponseWriter, r *http.Request, req itemReq, err error) {
	switch err {
	case errBadQuantity:
		kit.WriteError(w, r, http.StatusBadRequest, "invalid quantity", "quantity must be at least 1")
	case errSizeRequired:
		kit.WriteError(w, r, http.StatusBadRequest, "size required", "select a size before adding to cart")
	case errSizeNotOffered:
		kit.WriteError(w, r, http.StatusBadRequest, "size not offered", "size "+req.Size+" is not offered for "+req.ProductID)
	case errUnknownProduct:
		kit.WriteError(w, r, http.StatusNotFound, "Product not found", "no product found with id: "+req.ProductID)
	default:
		kit.WriteError(w, r, http.StatusInternalServerError, "server error", "")
	}
}

func decodeItemRequest(w http.ResponseWriter, r *http.Request) (itemReq, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxItemBody)
	defer func() { _ = r.Body.Close() }()

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	var req itemReq
	if err := dec.Decode(&req); err != nil {
		return itemReq{}, err
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		return itemReq{}, errors.New("extra data after json object")
	}

	return req, nil
}

type linePayload struct {
	Product   catalog.ProductPayload `json:"product"`
	ProductID string                 `json:"product_id"`
	Size      string                 `json:"size"`
	Quantity  int                    `json:"quantity"`
	LineTotal string                 `json:"line_total"`
	LineCents int64                  `json:"line_total_cents"`
}

type cartPayload struct {
	Lines      []linePayload `json:"lines"`
	Total      string        `json:"total"`
	TotalCents int64         `json:"total_cents"`
}

func cartPayloadFor(c *Cart) cartPayload {
	lines := c.Lines()

	out := cartPayload{Lines: make([]linePayload, 0, len(lines))}
	for _, l := range lines {
		cents := l.Product.PriceCents * int64(l.Quantity)
		out.Lines = append(out.Lines, linePayload{
			Product:   catalog.PayloadFor(l.Product),
			ProductID: l.ProductID,
			Size:      l.Size,
			Quantity:  l.Quantity,
			LineTotal: money.Format(cents),
			LineCents: cents,
		})
		out.TotalCents += cents
	}
	out.Total = money.Format(out.TotalCents)
	return out
}
