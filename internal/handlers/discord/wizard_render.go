package discord

import (
	"fmt"
	"log"

	"github.com/bwmarrin/discordgo"

	"github.com/ExoCode33/bp-idolls-guild-manager/internal/services/wizard"
)

const embedColor = 0x5865F2

// promptResponseData turns an abstract wizard prompt into an ephemeral
// message: an embed, a select menu for the step's options, and nav
// buttons. Form prompts render a button that opens the modal, since a
// modal can only be sent in direct reply to an interaction.
func promptResponseData(p *wizard.Prompt) *discordgo.InteractionResponseData {
	data := &discordgo.InteractionResponseData{
		Embeds: []*discordgo.MessageEmbed{{
			Title:       p.Title,
			Description: p.Description,
			Color:       embedColor,
		}},
		Flags: discordgo.MessageFlagsEphemeral,
	}

	if p.Done {
		data.Components = []discordgo.MessageComponent{}
		return data
	}

	var components []discordgo.MessageComponent

	if len(p.Options) > 0 {
		options := make([]discordgo.SelectMenuOption, 0, len(p.Options))
		for _, opt := range p.Options {
			options = append(options, discordgo.SelectMenuOption{
				Label: opt.Label,
				Value: opt.Value,
			})
		}
		components = append(components, discordgo.ActionsRow{
			Components: []discordgo.MessageComponent{
				discordgo.SelectMenu{
					CustomID:    fmt.Sprintf("wizard:select:%s", p.Step),
					Placeholder: "Pick one",
					Options:     options,
				},
			},
		})
	}

	if len(p.Form) > 0 {
		components = append(components, discordgo.ActionsRow{
			Components: []discordgo.MessageComponent{
				discordgo.Button{
					Label:    "Enter in-game name",
					Style:    discordgo.PrimaryButton,
					CustomID: "wizard:ign_open",
				},
			},
		})
	}

	navRow := discordgo.ActionsRow{}
	if p.ShowBack {
		navRow.Components = append(navRow.Components, discordgo.Button{
			Label:    "Back",
			Style:    discordgo.SecondaryButton,
			CustomID: "wizard:back",
		})
	}
	navRow.Components = append(navRow.Components, discordgo.Button{
		Label:    "Cancel",
		Style:    discordgo.DangerButton,
		CustomID: "wizard:cancel",
	})
	components = append(components, navRow)

	data.Components = components
	return data
}

// respondWithModal opens the form prompt as a modal
func respondWithModal(s *discordgo.Session, i *discordgo.InteractionCreate, p *wizard.Prompt) {
	inputs := make([]discordgo.MessageComponent, 0, len(p.Form))
	for _, field := range p.Form {
		inputs = append(inputs, discordgo.ActionsRow{
			Components: []discordgo.MessageComponent{
				discordgo.TextInput{
					CustomID:  field.ID,
					Label:     field.Label,
					Style:     discordgo.TextInputShort,
					Required:  field.Required,
					MaxLength: field.MaxLength,
				},
			},
		})
	}

	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseModal,
		Data: &discordgo.InteractionResponseData{
			CustomID:   "wizard:ign",
			Title:      p.Title,
			Components: inputs,
		},
	})
	if err != nil {
		log.Printf("Error opening modal: %v", err)
	}
}

func respondEphemeralText(s *discordgo.Session, i *discordgo.InteractionCreate, content string) {
	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: content,
			Flags:   discordgo.MessageFlagsEphemeral,
		},
	})
	if err != nil {
		log.Printf("Error responding with message: %v", err)
	}
}

// updateMessageText replaces the wizard message with plain text and
// strips the components so stale controls cannot fire
func updateMessageText(s *discordgo.Session, i *discordgo.InteractionCreate, content string) {
	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseUpdateMessage,
		Data: &discordgo.InteractionResponseData{
			Content:    content,
			Embeds:     []*discordgo.MessageEmbed{},
			Components: []discordgo.MessageComponent{},
			Flags:      discordgo.MessageFlagsEphemeral,
		},
	})
	if err != nil {
		log.Printf("Error updating wizard message: %v", err)
	}
}

func modalInputValue(data discordgo.ModalSubmitInteractionData, id string) string {
	for _, row := range data.Components {
		actionsRow, ok := row.(*discordgo.ActionsRow)
		if !ok {
			continue
		}
		for _, component := range actionsRow.Components {
			if input, ok := component.(*discordgo.TextInput); ok && input.CustomID == id {
				return input.Value
			}
		}
	}
	return ""
}
