package shell

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/JesusQuilleli/family-frontend-sub001/internal/familyshop"
	"github.com/JesusQuilleli/family-frontend-sub001/internal/querycache"
)

// Staleness windows per endpoint. Catalog data moves slowly;
// notifications do not.
const (
	categoriesTTL    = 10 * time.Minute
	productsTTL      = 5 * time.Minute
	ordersTTL        = 5 * time.Minute
	notificationsTTL = 5 * time.Minute
)

func (s *Server) respondJSON(w http.ResponseWriter, code int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.log.Error("encode response failed", zap.Error(err))
	}
}

// respondError maps the normalized client error onto the local API:
// rejections keep their backend status and message, transport failures
// surface as 502.
func (s *Server) respondError(w http.ResponseWriter, err error) {
	var apiErr *familyshop.Error
	if errors.As(err, &apiErr) {
		code := http.StatusBadGateway
		if apiErr.Kind == familyshop.KindRejected && apiErr.Status != 0 {
			code = apiErr.Status
		}
		s.respondJSON(w, code, map[string]string{"error": apiErr.Message})
		return
	}
	s.log.Error("action failed", zap.Error(err))
	s.respondJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
}

func parseIntDefault(s string, def int) int {
	if s == "" {
		return def
	}
	if v, err := strconv.Atoi(s); err == nil {
		return v
	}
	return def
}

func listParams(r *http.Request) familyshop.ListParams {
	return familyshop.ListParams{
		Page:  parseIntDefault(r.URL.Query().Get("page"), 1),
		Limit: parseIntDefault(r.URL.Query().Get("limit"), 10),
	}
}

func (s *Server) getCategories(w http.ResponseWriter, r *http.Request) {
	key := querycache.Key("categories")
	categories, err := querycache.Get(r.Context(), s.cache, key, categoriesTTL,
		func(ctx context.Context) ([]familyshop.Category, error) {
			return s.shop.Categories(ctx)
		})
	if err != nil {
		s.respondError(w, err)
		return
	}
	s.respondJSON(w, http.StatusOK, categories)
}

func (s *Server) getProducts(w http.ResponseWriter, r *http.Request) {
	params := familyshop.ProductListParams{
		ListParams: listParams(r),
		CategoryID: int64(parseIntDefault(r.URL.Query().Get("category"), 0)),
		Search:     r.URL.Query().Get("search"),
	}
	key := querycache.Key("products", params.Page, params.Limit, params.CategoryID, params.Search)
	pageData, err := querycache.Get(r.Context(), s.cache, key, productsTTL,
		func(ctx context.Context) (*familyshop.ProductPage, error) {
			return s.shop.Products(ctx, params)
		})
	if err != nil {
		s.respondError(w, err)
		return
	}
	s.respondJSON(w, http.StatusOK, pageData)
}

func (s *Server) getProduct(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		s.respondJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid product id"})
		return
	}
	key := querycache.Key("product", id)
	product, err := querycache.Get(r.Context(), s.cache, key, productsTTL,
		func(ctx context.Context) (*familyshop.Product, error) {
			return s.shop.Product(ctx, id)
		})
	if err != nil {
		s.respondError(w, err)
		return
	}
	s.respondJSON(w, http.StatusOK, product)
}

func (s *Server) getOrders(w http.ResponseWriter, r *http.Request) {
	params := familyshop.OrderListParams{
		ListParams: listParams(r),
		Status:     r.URL.Query().Get("status"),
		Search:     r.URL.Query().Get("search"),
		Date:       r.URL.Query().Get("date"),
	}
	key := querycache.Key("orders", params.Page, params.Limit, params.Status, params.Search, params.Date)
	pageData, err := querycache.Get(r.Context(), s.cache, key, ordersTTL,
		func(ctx context.Context) (*familyshop.OrderPage, error) {
			return s.shop.AdminOrders(ctx, params)
		})
	if err != nil {
		s.respondError(w, err)
		return
	}
	s.respondJSON(w, http.StatusOK, pageData)
}

func (s *Server) getNotifications(w http.ResponseWriter, r *http.Request) {
	userID, err := strconv.ParseInt(chi.URLParam(r, "userID"), 10, 64)
	if err != nil {
		s.respondJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid user id"})
		return
	}
	params := listParams(r)
	key := querycache.Key("notifications", userID, params.Page, params.Limit)
	pageData, err := querycache.Get(r.Context(), s.cache, key, notificationsTTL,
		func(ctx context.Context) (*familyshop.NotificationPage, error) {
			return s.shop.Notifications(ctx, userID, params)
		})
	if err != nil {
		s.respondError(w, err)
		return
	}
	s.respondJSON(w, http.StatusOK, pageData)
}

func (s *Server) getUnread(w http.ResponseWriter, r *http.Request) {
	userID, err := strconv.ParseInt(chi.URLParam(r, "userID"), 10, 64)
	if err != nil {
		s.respondJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid user id"})
		return
	}
	key := querycache.Key("unread", userID)
	unread, err := querycache.Get(r.Context(), s.cache, key, notificationsTTL,
		func(ctx context.Context) (int, error) {
			return s.shop.UnreadNotifications(ctx, userID)
		})
	if err != nil {
		s.respondError(w, err)
		return
	}
	s.respondJSON(w, http.StatusOK, map[string]int{"unread": unread})
}
