package cartclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const requestTimeout = 10 * time.Second

// Client llama al backend externo que administra carrito y wishlist.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

func New(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: requestTimeout,
		},
	}
}

type addRequest struct {
	TelegramID string `json:"telegram_id"`
	ProductID  string `json:"product_id"`
	Quantity   int    `json:"quantity"`
	AsWishlist bool   `json:"as_wishlist,omitempty"`
}

// Add envía el producto al carrito (o wishlist) del usuario.
// Cualquier 2xx es éxito. No hay reintentos: un fallo se reporta una
// sola vez por acción del usuario.
func (c *Client) Add(ctx context.Context, telegramID, productID string, wishlist bool) error {
	body, err := json.Marshal(addRequest{
		TelegramID: telegramID,
		ProductID:  productID,
		Quantity:   1,
		AsWishlist: wishlist,
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/telegram/cart/add", bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("cart backend responded with status %d", resp.StatusCode)
	}
	return nil
}
