package bot

import (
	"fmt"
	"html"
	"math"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"adeybloom-backend/internal/models"
)

// Tokens de callback. Todo el "estado" de navegación viaja dentro del
// token del botón: no hay sesión del lado del servidor.
const (
	tokenBrowseProducts = "browse_products"
	tokenViewCart       = "view_cart"
	tokenTrackOrder     = "track_order"
	tokenAIAssistant    = "ai_assistant"
	tokenBackToMenu     = "back_to_menu"

	prefixCategory = "category:"
	prefixProduct  = "product:"
	prefixCartAdd  = "cart:add:"
	prefixWishAdd  = "wish:add:"
)

// Tipo de acción decodificada
const (
	kindBrowse      = "browse"
	kindViewCart    = "view_cart"
	kindTrackOrder  = "track_order"
	kindAIAssistant = "ai_assistant"
	kindBackToMenu  = "back_to_menu"
	kindCategory    = "category"
	kindProduct     = "product"
	kindCartAdd     = "cart_add"
	kindWishAdd     = "wish_add"
	kindUnknown     = "unknown"
)

// Categorías fijas del menú
var categories = []string{
	"Skin Care",
	"Hair Care",
	"Makeup",
	"Perfume",
}

const (
	viewCartText      = "Feature coming soon: View Cart"
	trackOrderText    = "To track an order, send /track <order_id> in this chat."
	aiAssistantText   = "AI Assistant is coming soon, stay tuned!"
	unknownText       = "Unknown option selected."
	dbUnavailableText = "DB not available yet. Please try again later."
	categoryErrorText = "Could not load products right now. Please try again later."
	helpText          = "Available commands:\n/start - Open main menu\n/help - Show this message\n/track <order_id> - Track an order"
)

// Action es la intención decodificada de un token de callback.
// Vive solo mientras se atiende ese callback.
type Action struct {
	Kind string
	Arg  string
}

func parseAction(data string) Action {
	switch data {
	case tokenBrowseProducts:
		return Action{Kind: kindBrowse}
	case tokenViewCart:
		return Action{Kind: kindViewCart}
	case tokenTrackOrder:
		return Action{Kind: kindTrackOrder}
	case tokenAIAssistant:
		return Action{Kind: kindAIAssistant}
	case tokenBackToMenu:
		return Action{Kind: kindBackToMenu}
	}

	switch {
	case strings.HasPrefix(data, prefixCategory):
		return Action{Kind: kindCategory, Arg: strings.TrimPrefix(data, prefixCategory)}
	case strings.HasPrefix(data, prefixProduct):
		return Action{Kind: kindProduct, Arg: strings.TrimPrefix(data, prefixProduct)}
	case strings.HasPrefix(data, prefixCartAdd):
		return Action{Kind: kindCartAdd, Arg: strings.TrimPrefix(data, prefixCartAdd)}
	case strings.HasPrefix(data, prefixWishAdd):
		return Action{Kind: kindWishAdd, Arg: strings.TrimPrefix(data, prefixWishAdd)}
	}
	return Action{Kind: kindUnknown}
}

func mainMenuText(firstName string) string {
	name := firstName
	if name == "" {
		name = "there"
	}
	return fmt.Sprintf("🌸 Welcome, %s!\nChoose an option below:", name)
}

func mainMenuKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(tgbotapi.NewInlineKeyboardButtonData("1️⃣ Browse Products", tokenBrowseProducts)),
		tgbotapi.NewInlineKeyboardRow(tgbotapi.NewInlineKeyboardButtonData("2️⃣ View Cart", tokenViewCart)),
		tgbotapi.NewInlineKeyboardRow(tgbotapi.NewInlineKeyboardButtonData("3️⃣ Track Order", tokenTrackOrder)),
		tgbotapi.NewInlineKeyboardRow(tgbotapi.NewInlineKeyboardButtonData("4️⃣ AI Assistant", tokenAIAssistant)),
	)
}

func categoryKeyboard() tgbotapi.InlineKeyboardMarkup {
	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(categories)+1)
	for _, category := range categories {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(category, prefixCategory+category),
		))
	}
	rows = append(rows, backRow())
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

// productListView arma la vista de una categoría: hasta 5 botones de
// producto más Volver. Sin productos no hay botones de producto.
func productListView(category string, items []models.ListItem) (string, tgbotapi.InlineKeyboardMarkup) {
	if len(items) == 0 {
		return fmt.Sprintf("No products found in %s.", category),
			tgbotapi.NewInlineKeyboardMarkup(backRow())
	}

	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(items)+1)
	for _, item := range items {
		if item.ID == nil {
			// Sin id no hay botón usable
			continue
		}
		label := "Unnamed"
		if item.Name != nil && *item.Name != "" {
			label = *item.Name
		}
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(label, prefixProduct+*item.ID),
		))
	}
	rows = append(rows, backRow())

	return fmt.Sprintf("Products in %s:", category), tgbotapi.NewInlineKeyboardMarkup(rows...)
}

// categoryView resuelve la respuesta de una categoría según el estado
// del catálogo: sin conexión o con fallo de consulta devuelve el mensaje
// degradado sin teclado; con resultados delega en productListView.
func categoryView(connected bool, category string, items []models.ListItem, queryErr error) (string, *tgbotapi.InlineKeyboardMarkup) {
	if !connected {
		return dbUnavailableText, nil
	}
	if queryErr != nil {
		return categoryErrorText, nil
	}
	text, keyboard := productListView(category, items)
	return text, &keyboard
}

// cartAddView elige el acuse efímero y el mensaje de confirmación de una
// mutación de carrito o wishlist. Un fallo conserva su detalle en el
// mensaje al usuario.
func cartAddView(wishlist bool, err error) (string, string) {
	target := "cart"
	if wishlist {
		target = "wishlist"
	}
	if err != nil {
		return fmt.Sprintf("Could not add to %s", target),
			fmt.Sprintf("Failed to add the product to your %s: %v", target, err)
	}
	if wishlist {
		return "Added to wishlist ❤️", "Product added to your wishlist ❤️"
	}
	return "Added to cart ✅", "Product added to your cart ✅"
}

// detailView arma la tarjeta de detalle en HTML más sus botones.
// Devuelve además la URL de la primera imagen, si hay.
func detailView(detail models.Detail) (string, tgbotapi.InlineKeyboardMarkup, string) {
	name := "Unnamed"
	if detail.Name != nil && *detail.Name != "" {
		name = *detail.Name
	}

	var b strings.Builder
	fmt.Fprintf(&b, "<b>%s</b>\n", html.EscapeString(name))

	if detail.Price != nil {
		currency := ""
		if detail.Currency != nil {
			currency = *detail.Currency
		}
		fmt.Fprintf(&b, "💰 %.2f %s\n", *detail.Price, html.EscapeString(currency))
	}
	if detail.Description != nil && *detail.Description != "" {
		b.WriteString("\n" + html.EscapeString(*detail.Description) + "\n")
	}
	b.WriteString("\n⭐ " + renderRating(detail.Rating))

	id := ""
	if detail.ID != nil {
		id = *detail.ID
	}
	keyboard := tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(tgbotapi.NewInlineKeyboardButtonData("🛒 Add to Cart", prefixCartAdd+id)),
		tgbotapi.NewInlineKeyboardRow(tgbotapi.NewInlineKeyboardButtonData("❤️ Add to Wishlist", prefixWishAdd+id)),
		backRow(),
	)

	imageURL := ""
	if len(detail.Images) > 0 {
		imageURL = detail.Images[0]
	}
	return b.String(), keyboard, imageURL
}

// renderRating dibuja un rating 0.0-5.0 como estrellas: se redondea al
// entero más cercano, se limita a [0,5] y el valor crudo va como sufijo.
// Sin rating se muestra "No rating"; un valor no numérico se muestra tal cual.
func renderRating(rating interface{}) string {
	if rating == nil {
		return "No rating"
	}

	var value float64
	switch v := rating.(type) {
	case float64:
		value = v
	case float32:
		value = float64(v)
	case int:
		value = float64(v)
	case int32:
		value = float64(v)
	case int64:
		value = float64(v)
	default:
		return fmt.Sprintf("%v", rating)
	}

	filled := int(math.Round(value))
	if filled < 0 {
		filled = 0
	}
	if filled > 5 {
		filled = 5
	}
	return strings.Repeat("★", filled) + strings.Repeat("☆", 5-filled) + fmt.Sprintf(" (%.1f)", value)
}

func backRow() []tgbotapi.InlineKeyboardButton {
	return tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("⬅️ Back", tokenBackToMenu),
	)
}
