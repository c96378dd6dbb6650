package bot

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.mongodb.org/mongo-driver/bson"

	"adeybloom-backend/internal/cartclient"
	"adeybloom-backend/internal/models"
	"adeybloom-backend/internal/repository"
)

const categoryPageSize = 5

// Bot es el motor de navegación de Telegram. No guarda estado entre
// turnos: cada update se resuelve solo con su token y el catálogo.
type Bot struct {
	api  *tgbotapi.BotAPI
	repo *repository.ProductRepository
	cart *cartclient.Client
}

func New(token string, repo *repository.ProductRepository, cart *cartclient.Client) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("could not create bot: %w", err)
	}
	log.Printf("🤖 Telegram bot authorized as @%s", api.Self.UserName)

	return &Bot{
		api:  api,
		repo: repo,
		cart: cart,
	}, nil
}

// Run inicia el long-polling y atiende cada update en su propia goroutine,
// para que un turno lento no bloquee a los demás usuarios.
func (b *Bot) Run(ctx context.Context) {
	updateConfig := tgbotapi.NewUpdate(0)
	updateConfig.Timeout = 30
	updates := b.api.GetUpdatesChan(updateConfig)

	log.Println("🤖 Telegram bot polling started")
	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			log.Println("🤖 Telegram bot polling stopped")
			return
		case update, ok := <-updates:
			if !ok {
				return
			}
			go b.handleUpdate(ctx, update)
		}
	}
}

func (b *Bot) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	// Un turno fallido nunca tumba el motor
	defer func() {
		if r := recover(); r != nil {
			log.Println("⚠️ recovered while handling update:", r)
		}
	}()

	switch {
	case update.CallbackQuery != nil:
		b.handleCallback(ctx, update.CallbackQuery)
	case update.Message != nil && update.Message.IsCommand():
		b.handleCommand(update.Message)
	}
}

func (b *Bot) handleCommand(msg *tgbotapi.Message) {
	log.Printf("💬 /%s from user id=%d", msg.Command(), msg.From.ID)

	switch msg.Command() {
	case "start":
		reply := tgbotapi.NewMessage(msg.Chat.ID, mainMenuText(msg.From.FirstName))
		reply.ReplyMarkup = mainMenuKeyboard()
		b.send(reply)
	case "help":
		b.send(tgbotapi.NewMessage(msg.Chat.ID, helpText))
	case "track":
		args := strings.Fields(msg.CommandArguments())
		if len(args) == 0 {
			b.send(tgbotapi.NewMessage(msg.Chat.ID, "Usage: /track <order_id>. Provide an order id to track."))
			return
		}
		b.send(tgbotapi.NewMessage(msg.Chat.ID, fmt.Sprintf("Tracking for order %s: feature coming soon (stub).", args[0])))
	}
}

func (b *Bot) handleCallback(ctx context.Context, query *tgbotapi.CallbackQuery) {
	if query.Message == nil {
		return
	}
	action := parseAction(query.Data)
	log.Printf("💬 callback from user id=%d data=%s", query.From.ID, query.Data)

	chatID := query.Message.Chat.ID
	messageID := query.Message.MessageID

	// Las mutaciones de carrito responden el callback con su propio
	// acuse; el resto lo responde aquí para quitar el spinner del botón.
	switch action.Kind {
	case kindCartAdd, kindWishAdd:
	default:
		b.request(tgbotapi.NewCallback(query.ID, ""))
	}

	switch action.Kind {
	case kindBrowse:
		b.edit(chatID, messageID, "Select a category:", categoryKeyboard())
	case kindCategory:
		b.showCategory(ctx, chatID, messageID, action.Arg)
	case kindProduct:
		b.showProduct(ctx, chatID, messageID, action.Arg)
	case kindCartAdd:
		b.addToCart(ctx, query, action.Arg, false)
	case kindWishAdd:
		b.addToCart(ctx, query, action.Arg, true)
	case kindViewCart:
		b.editPlain(chatID, messageID, viewCartText)
	case kindTrackOrder:
		b.editPlain(chatID, messageID, trackOrderText)
	case kindAIAssistant:
		b.editPlain(chatID, messageID, aiAssistantText)
	case kindBackToMenu:
		b.edit(chatID, messageID, mainMenuText(query.From.FirstName), mainMenuKeyboard())
	default:
		b.editPlain(chatID, messageID, unknownText)
	}
}

func (b *Bot) showCategory(ctx context.Context, chatID int64, messageID int, category string) {
	connected := b.repo.Connected()

	var items []models.ListItem
	var err error
	if connected {
		items, err = b.repo.List(ctx, categoryPageSize, 0, bson.M{"active": true, "category": category})
		if err != nil {
			log.Println("⚠️ category query failed:", err)
		}
	}

	text, keyboard := categoryView(connected, category, items, err)
	if keyboard == nil {
		b.editPlain(chatID, messageID, text)
		return
	}
	b.edit(chatID, messageID, text, *keyboard)
}

func (b *Bot) showProduct(ctx context.Context, chatID int64, messageID int, productID string) {
	detail, err := b.repo.FindByID(ctx, productID)
	if err != nil {
		log.Println("⚠️ product query failed:", err)
		b.editPlain(chatID, messageID, "Could not load this product right now. Please try again later.")
		return
	}
	if detail == nil {
		b.editPlain(chatID, messageID, "Product not found.")
		return
	}

	caption, keyboard, imageURL := detailView(*detail)

	if imageURL != "" {
		photo := tgbotapi.NewPhoto(chatID, tgbotapi.FileURL(imageURL))
		photo.Caption = caption
		photo.ParseMode = tgbotapi.ModeHTML
		photo.ReplyMarkup = keyboard
		if _, err := b.api.Send(photo); err == nil {
			// Quitar la vista anterior para no duplicar pantallas
			b.request(tgbotapi.NewDeleteMessage(chatID, messageID))
			return
		}
		log.Println("⚠️ photo send failed, falling back to text")
	}

	edit := tgbotapi.NewEditMessageTextAndMarkup(chatID, messageID, caption, keyboard)
	edit.ParseMode = tgbotapi.ModeHTML
	if _, err := b.api.Send(edit); err != nil {
		msg := tgbotapi.NewMessage(chatID, caption)
		msg.ParseMode = tgbotapi.ModeHTML
		msg.ReplyMarkup = keyboard
		b.send(msg)
	}
}

// addToCart delega en el backend externo de carrito. Cualquier fallo se
// convierte en un mensaje al usuario; el motor queda listo para el
// siguiente turno.
func (b *Bot) addToCart(ctx context.Context, query *tgbotapi.CallbackQuery, productID string, wishlist bool) {
	chatID := query.Message.Chat.ID
	telegramID := strconv.FormatInt(query.From.ID, 10)

	err := b.cart.Add(ctx, telegramID, productID, wishlist)
	if err != nil {
		log.Printf("⚠️ cart backend call failed: %v", err)
	}

	ack, message := cartAddView(wishlist, err)
	if err != nil {
		b.request(tgbotapi.NewCallbackWithAlert(query.ID, ack))
	} else {
		b.request(tgbotapi.NewCallback(query.ID, ack))
	}
	b.send(tgbotapi.NewMessage(chatID, message))
}

func (b *Bot) send(c tgbotapi.Chattable) {
	if _, err := b.api.Send(c); err != nil {
		log.Println("⚠️ send failed:", err)
	}
}

func (b *Bot) request(c tgbotapi.Chattable) {
	if _, err := b.api.Request(c); err != nil {
		log.Println("⚠️ request failed:", err)
	}
}

func (b *Bot) edit(chatID int64, messageID int, text string, keyboard tgbotapi.InlineKeyboardMarkup) {
	edit := tgbotapi.NewEditMessageTextAndMarkup(chatID, messageID, text, keyboard)
	if _, err := b.api.Send(edit); err != nil {
		// El mensaje anterior puede ser una foto, que no admite edición de texto
		msg := tgbotapi.NewMessage(chatID, text)
		msg.ReplyMarkup = keyboard
		b.send(msg)
	}
}

func (b *Bot) editPlain(chatID int64, messageID int, text string) {
	edit := tgbotapi.NewEditMessageText(chatID, messageID, text)
	if _, err := b.api.Send(edit); err != nil {
		b.send(tgbotapi.NewMessage(chatID, text))
	}
}
