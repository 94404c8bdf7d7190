package service

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"

	"github.com/Ithalolp/JW-STORE/pkg/domain/model"
	"github.com/Ithalolp/JW-STORE/pkg/money"
)

const (
	notProvided = "Não informado"
	divider     = "──────────────────────────"
)

// LinkOpener opens the checkout hand-off URL in an external application.
// Delivery is not confirmed; responsibility ends at invoking Open.
type LinkOpener interface {
	Open(target string) error
}

// ProfilePrompt lets the presentation layer resurface the product
// configuration flow when checkout is blocked on an incomplete profile.
type ProfilePrompt interface {
	PromptProfile(item model.CartLineItem)
}

type CheckoutService interface {
	// BuildMessage serializes the current cart and profile into the order
	// text. Fails with model.ErrEmptyCart when the cart has no items.
	BuildMessage() (string, error)

	// Checkout validates, builds the hand-off URL and clears both carts.
	// The clear happens before the caller can open the URL, so a
	// re-triggered checkout can never send the same order twice. A failed
	// hand-off loses the cart; that trade-off is intentional.
	Checkout() (string, error)

	// OpenCheckout is Checkout plus opening the URL through the injected
	// LinkOpener.
	OpenCheckout() error
}

func NewCheckoutService(
	cart CartService,
	profiles ProfileService,
	dispatcher EventDispatcher,
	opener LinkOpener,
	prompt ProfilePrompt,
	storeName string,
	storePhone string,
) CheckoutService {
	return &checkoutService{
		cart:       cart,
		profiles:   profiles,
		dispatcher: dispatcher,
		opener:     opener,
		prompt:     prompt,
		storeName:  storeName,
		storePhone: storePhone,
	}
}

type checkoutService struct {
	cart       CartService
	profiles   ProfileService
	dispatcher EventDispatcher
	opener     LinkOpener
	prompt     ProfilePrompt
	storeName  string
	storePhone string
}

func (s *checkoutService) BuildMessage() (string, error) {
	items := s.cart.Items()
	if len(items) == 0 {
		return "", model.ErrEmptyCart
	}
	profile := s.profiles.Get()

	var b strings.Builder
	fmt.Fprintf(&b, "*🛒 NOVO PEDIDO - %s*\n", s.storeName)
	b.WriteString(divider + "\n\n")

	b.WriteString("*👤 CLIENTE:*\n")
	fmt.Fprintf(&b, "Nome: %s\n", orNotProvided(profile.Name))
	fmt.Fprintf(&b, "WhatsApp: %s\n\n", orNotProvided(profile.Phone))

	b.WriteString("*📋 ITENS DO PEDIDO:*\n")
	hasDelivery := false
	for i, item := range items {
		subtotal := item.Price.Mul(decimal.NewFromInt(int64(item.Quantity)))
		fmt.Fprintf(&b, "%d. %s\n", i+1, item.Name)
		fmt.Fprintf(&b, "   Tamanho: %s | Qtd: %d\n", item.Size, item.Quantity)
		fmt.Fprintf(&b, "   Valor: %s un.\n", money.FormatBRL(item.Price))
		fmt.Fprintf(&b, "   Subtotal: %s\n", money.FormatBRL(subtotal))

		b.WriteString(divider + "\n\n")
		b.WriteString("*📋 ENTREGA:*\n")
		if item.Delivery == model.Delivery {
			hasDelivery = true
			b.WriteString("   Entrega: 📦 Entregar\n")
			if item.Address != nil {
				fmt.Fprintf(&b, "   Endereço: %s, %s", item.Address.Street, item.Address.Number)
				if item.Address.Complement != "" {
					fmt.Fprintf(&b, " - %s", item.Address.Complement)
				}
				b.WriteString("\n")
				fmt.Fprintf(&b, "   Bairro: %s, %s\n", item.Address.District, item.Address.City)
			}
		} else {
			b.WriteString("   Entrega: 🏪 Retirar na loja\n")
		}
		b.WriteString("\n")
	}

	b.WriteString(divider + "\n")
	fmt.Fprintf(&b, "*💰 VALOR TOTAL:* %s\n", money.FormatBRL(s.cart.Total()))
	fmt.Fprintf(&b, "*📦 ITENS:* %d\n\n", s.cart.ItemCount())

	if hasDelivery {
		b.WriteString("*📍 ENTREGA:* Entrega no endereço\n\n")
	} else {
		b.WriteString("*📍 ENTREGA:* Retirada na Loja\n\n")
	}

	fmt.Fprintf(&b, "_Pedido gerado automaticamente via %s_", s.storeName)
	return b.String(), nil
}

func (s *checkoutService) Checkout() (string, error) {
	items := s.cart.Items()
	if len(items) == 0 {
		return "", model.ErrEmptyCart
	}

	profile := s.profiles.Get()
	if !profile.Complete() {
		s.prompt.PromptProfile(items[0])
		return "", model.ErrProfileIncomplete
	}

	message, err := s.BuildMessage()
	if err != nil {
		return "", err
	}
	target := fmt.Sprintf("https://wa.me/%s?text=%s", s.storePhone, encodeMessage(message))

	orderRef := uuid.New()
	s.cart.Clear()
	_ = s.dispatcher.Dispatch(model.CheckoutCompleted{OrderRef: orderRef})
	log.WithFields(log.Fields{
		"order_ref": orderRef,
		"items":     len(items),
	}).Info("Cart handed off to checkout")

	return target, nil
}

func (s *checkoutService) OpenCheckout() error {
	target, err := s.Checkout()
	if err != nil {
		return err
	}
	if err := s.opener.Open(target); err != nil {
		// The carts are already cleared at this point; see Checkout.
		log.WithError(err).Error("Checkout hand-off failed after cart clear")
		return err
	}
	return nil
}

func orNotProvided(value string) string {
	if value == "" {
		return notProvided
	}
	return value
}

// encodeMessage percent-encodes the order text for the ?text= parameter;
// line breaks become %0A. QueryEscape emits "+" for spaces, which the
// messaging application renders literally, so spaces are rewritten to %20.
func encodeMessage(message string) string {
	return strings.ReplaceAll(url.QueryEscape(message), "+", "%20")
}
