package transport

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"

	"github.com/Ithalolp/JW-STORE/pkg/catalog"
	"github.com/Ithalolp/JW-STORE/pkg/domain/model"
	"github.com/Ithalolp/JW-STORE/pkg/domain/service"
)

// Handler maps the storefront UI events onto the cart, profile and checkout
// services. Each route corresponds to one store or serializer operation.
type Handler struct {
	catalog  catalog.Provider
	cart     service.CartService
	profiles service.ProfileService
	checkout service.CheckoutService
	validate *validator.Validate
}

func Router(
	catalogProvider catalog.Provider,
	cart service.CartService,
	profiles service.ProfileService,
	checkout service.CheckoutService,
) http.Handler {
	h := &Handler{
		catalog:  catalogProvider,
		cart:     cart,
		profiles: profiles,
		checkout: checkout,
		validate: validator.New(),
	}

	r := mux.NewRouter()
	r.HandleFunc("/products", h.listProducts).Methods(http.MethodGet)
	r.HandleFunc("/cart", h.getCart).Methods(http.MethodGet)
	r.HandleFunc("/cart/legacy", h.getLegacyCart).Methods(http.MethodGet)
	r.HandleFunc("/cart/items", h.addItem).Methods(http.MethodPost)
	r.HandleFunc("/cart/items/{id}", h.removeItem).Methods(http.MethodDelete)
	r.HandleFunc("/cart/items/{id}/quantity", h.changeQuantity).Methods(http.MethodPost)
	r.HandleFunc("/profile", h.getProfile).Methods(http.MethodGet)
	r.HandleFunc("/profile", h.saveProfile).Methods(http.MethodPut)
	r.HandleFunc("/checkout", h.requestCheckout).Methods(http.MethodPost)

	return logMiddleware(r)
}

type addressPayload struct {
	Street     string `json:"street" validate:"required"`
	Number     string `json:"number" validate:"required"`
	Complement string `json:"complement"`
	District   string `json:"district"`
	City       string `json:"city"`
}

type addItemRequest struct {
	ProductID int64           `json:"productId" validate:"required"`
	Name      string          `json:"name" validate:"required"`
	Price     decimal.Decimal `json:"price"`
	Image     string          `json:"image"`
	Category  string          `json:"category"`
	Quantity  int             `json:"quantity" validate:"gte=1"`
	Size      string          `json:"size"`
	Delivery  string          `json:"delivery" validate:"required,oneof=pickup delivery"`
	Customer  struct {
		Name  string `json:"name"`
		Phone string `json:"phone"`
	} `json:"user"`
	Address *addressPayload `json:"address" validate:"required_if=Delivery delivery"`
}

type changeQuantityRequest struct {
	Delta int `json:"delta" validate:"required"`
}

func (h *Handler) listProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.catalog.Products(r.Context())
	if err != nil {
		log.WithError(err).Error("Failed to load product catalog")
		writeError(w, http.StatusInternalServerError, "catalog unavailable")
		return
	}

	categories := catalog.Categories(products)
	products = catalog.FilterByCategory(products, r.URL.Query().Get("category"))
	writeJSON(w, http.StatusOK, map[string]any{
		"products":   products,
		"categories": categories,
	})
}

func (h *Handler) getCart(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"items": h.cart.Items(),
		"total": h.cart.Total(),
		"count": h.cart.ItemCount(),
	})
}

func (h *Handler) getLegacyCart(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"items": h.cart.LegacyRows()})
}

func (h *Handler) addItem(w http.ResponseWriter, r *http.Request) {
	var req addItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "malformed request body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	draft := model.LineItemDraft{
		ProductID: req.ProductID,
		Name:      req.Name,
		Price:     req.Price,
		Image:     req.Image,
		Category:  req.Category,
		Quantity:  req.Quantity,
		Size:      req.Size,
		Delivery:  model.DeliveryMethod(req.Delivery),
		Customer:  model.CustomerSnapshot{Name: req.Customer.Name, Phone: req.Customer.Phone},
	}
	if req.Address != nil && draft.Delivery == model.Delivery {
		draft.Address = &model.Address{
			Street:     req.Address.Street,
			Number:     req.Address.Number,
			Complement: req.Address.Complement,
			District:   req.Address.District,
			City:       req.Address.City,
		}
	}

	item, err := h.cart.AddItem(draft)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, item)
}

func (h *Handler) removeItem(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	h.cart.RemoveItem(id)
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) changeQuantity(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req changeQuantityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "malformed request body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	h.cart.UpdateQuantity(id, req.Delta)
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) getProfile(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, h.profiles.Get())
}

func (h *Handler) saveProfile(w http.ResponseWriter, r *http.Request) {
	var patch model.ProfilePatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		writeError(w, http.StatusBadRequest, "malformed request body")
		return
	}
	if !h.profiles.Save(patch) {
		writeError(w, http.StatusInternalServerError, "failed to persist profile")
		return
	}
	writeJSON(w, http.StatusOK, h.profiles.Get())
}

func (h *Handler) requestCheckout(w http.ResponseWriter, r *http.Request) {
	target, err := h.checkout.Checkout()
	switch {
	case errors.Is(err, model.ErrEmptyCart):
		writeError(w, http.StatusUnprocessableEntity, "adicione produtos ao carrinho antes de finalizar")
	case errors.Is(err, model.ErrProfileIncomplete):
		writeError(w, http.StatusUnprocessableEntity, "complete seus dados antes de finalizar a compra")
	case err != nil:
		log.WithError(err).Error("Checkout failed")
		writeError(w, http.StatusInternalServerError, "erro ao gerar pedido")
	default:
		http.Redirect(w, r, target, http.StatusSeeOther)
	}
}

func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid item id")
		return 0, false
	}
	return id, true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.WithError(err).Error("Failed to encode response")
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

func logMiddleware(h http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log.WithFields(log.Fields{
			"method":     r.Method,
			"url":        r.URL,
			"remoteAddr": r.RemoteAddr,
			"userAgent":  r.UserAgent(),
		}).Info("got a new request")
		h.ServeHTTP(w, r)
	})
}
