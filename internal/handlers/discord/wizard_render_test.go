package discord

import (
	"testing"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ExoCode33/bp-idolls-guild-manager/internal/entities"
	"github.com/ExoCode33/bp-idolls-guild-manager/internal/services/wizard"
)

func TestPromptResponseDataSelectStep(t *testing.T) {
	data := promptResponseData(&wizard.Prompt{
		Step:        entities.StepChooseClass,
		Title:       "Choose a class",
		Description: "Pick one",
		Options: []wizard.Option{
			{Label: "Frost Mage", Value: "Frost Mage"},
			{Label: "Iron Vanguard", Value: "Iron Vanguard"},
		},
		ShowBack: true,
	})

	assert.Equal(t, discordgo.MessageFlagsEphemeral, data.Flags)
	require.Len(t, data.Embeds, 1)
	assert.Equal(t, "Choose a class", data.Embeds[0].Title)

	// Select menu row plus nav row
	require.Len(t, data.Components, 2)

	selectRow, ok := data.Components[0].(discordgo.ActionsRow)
	require.True(t, ok)
	menu, ok := selectRow.Components[0].(discordgo.SelectMenu)
	require.True(t, ok)
	assert.Equal(t, "wizard:select:choose_class", menu.CustomID)
	assert.Len(t, menu.Options, 2)

	navRow, ok := data.Components[1].(discordgo.ActionsRow)
	require.True(t, ok)
	require.Len(t, navRow.Components, 2)
	back, ok := navRow.Components[0].(discordgo.Button)
	require.True(t, ok)
	assert.Equal(t, "wizard:back", back.CustomID)
}

func TestPromptResponseDataFormStep(t *testing.T) {
	data := promptResponseData(&wizard.Prompt{
		Step:  entities.StepSubmitIGN,
		Title: "In-game name",
		Form:  []wizard.FormField{{ID: "ign", Label: "In-game name", Required: true, MaxLength: 32}},
	})

	require.Len(t, data.Components, 2)
	formRow, ok := data.Components[0].(discordgo.ActionsRow)
	require.True(t, ok)
	button, ok := formRow.Components[0].(discordgo.Button)
	require.True(t, ok)
	assert.Equal(t, "wizard:ign_open", button.CustomID)
}

func TestPromptResponseDataDone(t *testing.T) {
	data := promptResponseData(&wizard.Prompt{
		Step:        entities.StepCommitted,
		Title:       "Saved!",
		Description: "done",
		Done:        true,
	})

	// Terminal prompts carry no controls
	assert.Empty(t, data.Components)
}

func TestModalInputValue(t *testing.T) {
	data := discordgo.ModalSubmitInteractionData{
		CustomID: "wizard:ign",
		Components: []discordgo.MessageComponent{
			&discordgo.ActionsRow{
				Components: []discordgo.MessageComponent{
					&discordgo.TextInput{CustomID: "ign", Value: "FrostyOne"},
				},
			},
		},
	}

	assert.Equal(t, "FrostyOne", modalInputValue(data, "ign"))
	assert.Empty(t, modalInputValue(data, "missing"))
}
