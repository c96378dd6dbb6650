package bot

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"adeybloom-backend/internal/models"
)

func strPtr(s string) *string { return &s }

func TestParseAction(t *testing.T) {
	tests := []struct {
		data string
		want Action
	}{
		{"browse_products", Action{Kind: kindBrowse}},
		{"view_cart", Action{Kind: kindViewCart}},
		{"track_order", Action{Kind: kindTrackOrder}},
		{"ai_assistant", Action{Kind: kindAIAssistant}},
		{"back_to_menu", Action{Kind: kindBackToMenu}},
		{"category:Skin Care", Action{Kind: kindCategory, Arg: "Skin Care"}},
		{"product:64f1b2", Action{Kind: kindProduct, Arg: "64f1b2"}},
		{"cart:add:64f1b2", Action{Kind: kindCartAdd, Arg: "64f1b2"}},
		{"wish:add:64f1b2", Action{Kind: kindWishAdd, Arg: "64f1b2"}},
		{"something:else", Action{Kind: kindUnknown}},
		{"", Action{Kind: kindUnknown}},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, parseAction(tt.data), "data=%q", tt.data)
	}
}

func TestRenderRating(t *testing.T) {
	assert.Equal(t, "★★★★★ (4.6)", renderRating(4.6))
	assert.Equal(t, "★★★☆☆ (2.5)", renderRating(2.5))
	assert.Equal(t, "☆☆☆☆☆ (0.4)", renderRating(0.4))
	assert.Equal(t, "★★★☆☆ (3.0)", renderRating(3))
	assert.Equal(t, "★★★★★ (7.0)", renderRating(7.0), "values above 5 clamp to 5 stars")
	assert.Equal(t, "No rating", renderRating(nil))
	assert.Equal(t, "excellent", renderRating("excellent"), "non-numeric rating renders as raw text")
}

func TestMainMenuText(t *testing.T) {
	assert.Equal(t, "🌸 Welcome, Sara!\nChoose an option below:", mainMenuText("Sara"))
	assert.Contains(t, mainMenuText(""), "Welcome, there")
}

func TestMainMenuKeyboard(t *testing.T) {
	keyboard := mainMenuKeyboard()

	require.Len(t, keyboard.InlineKeyboard, 4)
	require.NotNil(t, keyboard.InlineKeyboard[0][0].CallbackData)
	assert.Equal(t, "browse_products", *keyboard.InlineKeyboard[0][0].CallbackData)
	assert.Equal(t, "view_cart", *keyboard.InlineKeyboard[1][0].CallbackData)
	assert.Equal(t, "track_order", *keyboard.InlineKeyboard[2][0].CallbackData)
	assert.Equal(t, "ai_assistant", *keyboard.InlineKeyboard[3][0].CallbackData)
}

func TestCategoryKeyboard(t *testing.T) {
	keyboard := categoryKeyboard()

	require.Len(t, keyboard.InlineKeyboard, 5, "4 categories plus Back")
	assert.Equal(t, "Skin Care", keyboard.InlineKeyboard[0][0].Text)
	assert.Equal(t, "category:Skin Care", *keyboard.InlineKeyboard[0][0].CallbackData)
	assert.Equal(t, "back_to_menu", *keyboard.InlineKeyboard[4][0].CallbackData)
}

func TestProductListView_Empty(t *testing.T) {
	text, keyboard := productListView("Skin Care", nil)

	assert.Equal(t, "No products found in Skin Care.", text)
	require.Len(t, keyboard.InlineKeyboard, 1, "no product buttons, only Back")
	assert.Equal(t, "back_to_menu", *keyboard.InlineKeyboard[0][0].CallbackData)
}

func TestProductListView_UnnamedFallback(t *testing.T) {
	id := "64f1b2c3d4e5f6a7b8c9d0e1"
	items := []models.ListItem{
		{ID: &id},
	}
	text, keyboard := productListView("Makeup", items)

	assert.Equal(t, "Products in Makeup:", text)
	require.Len(t, keyboard.InlineKeyboard, 2)
	assert.Equal(t, "Unnamed", keyboard.InlineKeyboard[0][0].Text)
	assert.Equal(t, "product:"+id, *keyboard.InlineKeyboard[0][0].CallbackData)
}

func TestProductListView_SkipsItemsWithoutID(t *testing.T) {
	items := []models.ListItem{
		{Name: strPtr("Ghost product")},
	}
	_, keyboard := productListView("Perfume", items)

	require.Len(t, keyboard.InlineKeyboard, 1, "item without id gets no button")
}

func TestCategoryView_NoStore(t *testing.T) {
	text, keyboard := categoryView(false, "Skin Care", nil, nil)

	assert.Equal(t, "DB not available yet. Please try again later.", text)
	assert.Nil(t, keyboard, "degraded message carries no product buttons")
}

func TestCategoryView_QueryError(t *testing.T) {
	text, keyboard := categoryView(true, "Skin Care", nil, errors.New("cursor timeout"))

	assert.Equal(t, "Could not load products right now. Please try again later.", text)
	assert.Nil(t, keyboard)
}

func TestCategoryView_WithResults(t *testing.T) {
	id := "64f1b2c3d4e5f6a7b8c9d0e1"
	items := []models.ListItem{
		{ID: &id, Name: strPtr("Rose Serum")},
	}
	text, keyboard := categoryView(true, "Skin Care", items, nil)

	assert.Equal(t, "Products in Skin Care:", text)
	require.NotNil(t, keyboard)
	require.Len(t, keyboard.InlineKeyboard, 2)
	assert.Equal(t, "product:"+id, *keyboard.InlineKeyboard[0][0].CallbackData)
}

func TestCartAddView(t *testing.T) {
	ack, message := cartAddView(false, nil)
	assert.Equal(t, "Added to cart ✅", ack)
	assert.Equal(t, "Product added to your cart ✅", message)

	ack, message = cartAddView(true, nil)
	assert.Equal(t, "Added to wishlist ❤️", ack)
	assert.Equal(t, "Product added to your wishlist ❤️", message)
}

func TestCartAddView_FailureKeepsDetail(t *testing.T) {
	backendErr := errors.New("cart backend responded with status 500")

	ack, message := cartAddView(false, backendErr)
	assert.Equal(t, "Could not add to cart", ack)
	assert.Contains(t, message, "Failed to add the product to your cart")
	assert.Contains(t, message, "500", "the failure detail reaches the user")

	ack, message = cartAddView(true, errors.New("context deadline exceeded"))
	assert.Equal(t, "Could not add to wishlist", ack)
	assert.Contains(t, message, "wishlist")
	assert.Contains(t, message, "context deadline exceeded")
}

func TestDetailView(t *testing.T) {
	id := "64f1b2c3d4e5f6a7b8c9d0e1"
	price := 19.99
	detail := models.Detail{
		ID:          &id,
		Name:        strPtr("Rose Serum"),
		Description: strPtr("Hydrating night serum"),
		Price:       &price,
		Currency:    strPtr("ETB"),
		Images:      []string{"https://img/serum.jpg"},
		Rating:      4.6,
	}

	caption, keyboard, imageURL := detailView(detail)

	assert.Contains(t, caption, "<b>Rose Serum</b>")
	assert.Contains(t, caption, "💰 19.99 ETB")
	assert.Contains(t, caption, "Hydrating night serum")
	assert.Contains(t, caption, "★★★★★ (4.6)")
	assert.Equal(t, "https://img/serum.jpg", imageURL)

	require.Len(t, keyboard.InlineKeyboard, 3)
	assert.Equal(t, "cart:add:"+id, *keyboard.InlineKeyboard[0][0].CallbackData)
	assert.Equal(t, "wish:add:"+id, *keyboard.InlineKeyboard[1][0].CallbackData)
	assert.Equal(t, "back_to_menu", *keyboard.InlineKeyboard[2][0].CallbackData)
}

func TestDetailView_MinimalDocument(t *testing.T) {
	caption, _, imageURL := detailView(models.Detail{})

	assert.Contains(t, caption, "<b>Unnamed</b>")
	assert.Contains(t, caption, "No rating")
	assert.NotContains(t, caption, "💰")
	assert.Empty(t, imageURL)
}

func TestDetailView_EscapesHTML(t *testing.T) {
	detail := models.Detail{
		Name: strPtr("Serum <deluxe>"),
	}
	caption, _, _ := detailView(detail)

	assert.Contains(t, caption, "<b>Serum &lt;deluxe&gt;</b>")
}
