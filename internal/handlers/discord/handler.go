package discord

import (
	"context"
	"log"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/ExoCode33/bp-idolls-guild-manager/internal/entities"
	apperr "github.com/ExoCode33/bp-idolls-guild-manager/internal/errors"
	"github.com/ExoCode33/bp-idolls-guild-manager/internal/services"
	"github.com/ExoCode33/bp-idolls-guild-manager/internal/services/wizard"
)

// Handler handles all Discord interactions
type Handler struct {
	ServiceProvider *services.Provider
}

// HandlerConfig holds configuration for the Discord handler
type HandlerConfig struct {
	ServiceProvider *services.Provider
}

// NewHandler creates a new Discord handler
func NewHandler(cfg *HandlerConfig) *Handler {
	return &Handler{
		ServiceProvider: cfg.ServiceProvider,
	}
}

// RegisterCommands registers all slash commands with Discord
func (h *Handler) RegisterCommands(s *discordgo.Session, guildID string) error {
	memberOption := &discordgo.ApplicationCommandOption{
		Name:        "member",
		Description: "Register on behalf of another member (admins only)",
		Type:        discordgo.ApplicationCommandOptionUser,
	}

	commands := []*discordgo.ApplicationCommand{
		{
			Name:        "register",
			Description: "Guild roster registration",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Name:        "main",
					Description: "Register your main character",
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Options:     []*discordgo.ApplicationCommandOption{memberOption},
				},
				{
					Name:        "alt",
					Description: "Register an alt character",
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Options:     []*discordgo.ApplicationCommandOption{memberOption},
				},
				{
					Name:        "subclass",
					Description: "Register a subclass of an existing character",
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Options: []*discordgo.ApplicationCommandOption{
						{
							Name:        "parent",
							Description: "IGN of the character to attach the subclass to (defaults to your main)",
							Type:        discordgo.ApplicationCommandOptionString,
						},
						memberOption,
					},
				},
				{
					Name:        "edit",
					Description: "Edit a registered character",
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Options: []*discordgo.ApplicationCommandOption{
						{
							Name:        "ign",
							Description: "IGN of the character to edit",
							Type:        discordgo.ApplicationCommandOptionString,
							Required:    true,
						},
						memberOption,
					},
				},
			},
		},
	}

	for _, cmd := range commands {
		if _, err := s.ApplicationCommandCreate(s.State.User.ID, guildID, cmd); err != nil {
			return apperr.Wrapf(err, "failed to register command '%s'", cmd.Name)
		}
	}
	return nil
}

// HandleInteraction routes all interaction types
func (h *Handler) HandleInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) {
	switch i.Type {
	case discordgo.InteractionApplicationCommand:
		h.handleCommand(s, i)
	case discordgo.InteractionMessageComponent:
		h.handleComponent(s, i)
	case discordgo.InteractionModalSubmit:
		h.handleModalSubmit(s, i)
	}
}

var kindBySubcommand = map[string]entities.WizardKind{
	"main":     entities.WizardKindNewMain,
	"alt":      entities.WizardKindNewAlt,
	"subclass": entities.WizardKindNewSubclass,
	"edit":     entities.WizardKindEditField,
}

// handleCommand handles slash command interactions
func (h *Handler) handleCommand(s *discordgo.Session, i *discordgo.InteractionCreate) {
	data := i.ApplicationCommandData()
	if data.Name != "register" || len(data.Options) == 0 {
		return
	}

	subcommand := data.Options[0]
	kind, ok := kindBySubcommand[subcommand.Name]
	if !ok {
		return
	}

	actorID := interactionUserID(i)
	input := &wizard.BeginInput{
		ActorID:  actorID,
		TargetID: actorID,
		Kind:     kind,
	}

	for _, opt := range subcommand.Options {
		switch opt.Name {
		case "member":
			input.TargetID = opt.UserValue(nil).ID
		case "parent":
			input.ParentIGN = opt.StringValue()
		case "ign":
			input.EditIGN = opt.StringValue()
		}
	}

	if input.TargetID != actorID && !isAdmin(i) {
		respondEphemeralText(s, i, "Only admins can register on behalf of another member.")
		return
	}

	prompt, err := h.ServiceProvider.WizardService.Begin(context.Background(), input)
	if err != nil {
		respondEphemeralText(s, i, userMessage(err))
		return
	}

	err = s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: promptResponseData(prompt),
	})
	if err != nil {
		log.Printf("Error responding to /register %s: %v", subcommand.Name, err)
	}
}

// handleComponent handles select menus and buttons
func (h *Handler) handleComponent(s *discordgo.Session, i *discordgo.InteractionCreate) {
	customID := i.MessageComponentData().CustomID
	parts := strings.Split(customID, ":")
	if parts[0] != "wizard" || len(parts) < 2 {
		return
	}

	ctx := context.Background()
	actorID := interactionUserID(i)

	var (
		prompt *wizard.Prompt
		err    error
	)
	switch parts[1] {
	case "select":
		if len(parts) < 3 || len(i.MessageComponentData().Values) == 0 {
			return
		}
		step := entities.Step(parts[2])
		value := i.MessageComponentData().Values[0]
		prompt, err = h.ServiceProvider.WizardService.HandleSelection(ctx, actorID, step, value)

	case "back":
		prompt, err = h.ServiceProvider.WizardService.HandleBack(ctx, actorID)

	case "cancel":
		if err := h.ServiceProvider.WizardService.Cancel(ctx, actorID); err != nil {
			log.Printf("Error cancelling wizard for %s: %v", actorID, err)
		}
		updateMessageText(s, i, "Registration cancelled.")
		return

	case "ign_open":
		prompt, err = h.ServiceProvider.WizardService.CurrentPrompt(ctx, actorID)
		if err == nil && len(prompt.Form) > 0 {
			respondWithModal(s, i, prompt)
			return
		}

	default:
		return
	}

	if err != nil {
		h.renderError(ctx, s, i, err)
		return
	}

	updateErr := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseUpdateMessage,
		Data: promptResponseData(prompt),
	})
	if updateErr != nil {
		log.Printf("Error updating wizard message for %s: %v", actorID, updateErr)
	}
}

// handleModalSubmit handles the in-game name form
func (h *Handler) handleModalSubmit(s *discordgo.Session, i *discordgo.InteractionCreate) {
	data := i.ModalSubmitData()
	if data.CustomID != "wizard:ign" {
		return
	}

	ign := modalInputValue(data, "ign")
	actorID := interactionUserID(i)

	prompt, err := h.ServiceProvider.WizardService.HandleIGNSubmit(context.Background(), actorID, ign)
	if err != nil {
		h.renderError(context.Background(), s, i, err)
		return
	}

	updateErr := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseUpdateMessage,
		Data: promptResponseData(prompt),
	})
	if updateErr != nil {
		log.Printf("Error updating wizard message for %s: %v", actorID, updateErr)
	}
}

// renderError keeps the wizard message usable: expired sessions get a
// terminal notice, everything else re-renders the current step with the
// error on top.
func (h *Handler) renderError(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, cause error) {
	if apperr.IsNotFound(cause) {
		updateMessageText(s, i, "This registration has expired. Run /register to start over.")
		return
	}

	prompt, err := h.ServiceProvider.WizardService.CurrentPrompt(ctx, interactionUserID(i))
	if err != nil {
		updateMessageText(s, i, userMessage(cause))
		return
	}

	data := promptResponseData(prompt)
	if len(data.Embeds) > 0 {
		data.Embeds[0].Description = "⚠️ " + userMessage(cause) + "\n\n" + data.Embeds[0].Description
	}
	if err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseUpdateMessage,
		Data: data,
	}); err != nil {
		log.Printf("Error rendering wizard error: %v", err)
	}
}

// userMessage maps internal error codes to member-facing text
func userMessage(err error) string {
	switch apperr.GetCode(err) {
	case apperr.CodeValidation, apperr.CodeInvalidArgument:
		return err.Error()
	case apperr.CodeNotFound:
		return "That character isn't registered."
	case apperr.CodeAlreadyExists:
		return "A character with that name is already registered."
	case apperr.CodeFailedPrecondition:
		return err.Error()
	default:
		return "Something went wrong. Please try again."
	}
}

func interactionUserID(i *discordgo.InteractionCreate) string {
	if i.Member != nil && i.Member.User != nil {
		return i.Member.User.ID
	}
	if i.User != nil {
		return i.User.ID
	}
	return ""
}

func isAdmin(i *discordgo.InteractionCreate) bool {
	return i.Member != nil && i.Member.Permissions&discordgo.PermissionManageServer != 0
}
