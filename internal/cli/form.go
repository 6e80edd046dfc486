package cli

import (
	"fmt"
	"strings"

	"github.com/AlecAivazis/survey/v2"
	"github.com/rustyeddy/tradelog/config"
	"github.com/rustyeddy/tradelog/journal"
	"github.com/rustyeddy/tradelog/market"
	"github.com/shopspring/decimal"
)

// defaultInput turns the configured form defaults into a TradeInput.
func defaultInput(d config.FormDefaults) journal.TradeInput {
	return journal.TradeInput{
		Asset:     d.Asset,
		Timeframe: d.Timeframe,
		Amount:    d.Amount,
		Direction: d.Direction,
		Outcome:   d.Outcome,
		Payout:    d.Payout,
		Emotion:   d.Emotion,
	}
}

func validateNumber(val interface{}) error {
	str := strings.TrimSpace(strings.ReplaceAll(val.(string), ",", "."))
	d, err := decimal.NewFromString(str)
	if err != nil {
		return fmt.Errorf("enter a number")
	}
	if d.IsNegative() {
		return fmt.Errorf("must not be negative")
	}
	return nil
}

// canonical returns the catalog spelling of v, or the first option when v
// is not recognised.
func canonical[T ~string](v string, parse func(string) (T, error), opts []string) string {
	if p, err := parse(v); err == nil {
		return string(p)
	}
	return opts[0]
}

// PromptTrade asks for every trade field, pre-filled with the defaults.
func PromptTrade(defaults journal.TradeInput) (journal.TradeInput, error) {
	assets := market.Strings(market.AssetList())
	tfs := market.Strings(market.Timeframes)
	dirs := market.Strings(market.Directions)
	outcomes := market.Strings(market.Outcomes)
	emotions := market.Strings(market.Emotions)

	qs := []*survey.Question{
		{
			Name: "asset",
			Prompt: &survey.Select{
				Message: "Asset:",
				Options: assets,
				Default: canonical(defaults.Asset, market.ParseAsset, assets),
			},
		},
		{
			Name: "timeframe",
			Prompt: &survey.Select{
				Message: "Timeframe:",
				Options: tfs,
				Default: canonical(defaults.Timeframe, market.ParseTimeframe, tfs),
			},
		},
		{
			Name:     "amount",
			Prompt:   &survey.Input{Message: "Amount:", Default: defaults.Amount},
			Validate: validateNumber,
		},
		{
			Name: "direction",
			Prompt: &survey.Select{
				Message: "Direction:",
				Options: dirs,
				Default: canonical(defaults.Direction, market.ParseDirection, dirs),
			},
		},
		{
			Name: "outcome",
			Prompt: &survey.Select{
				Message: "Outcome:",
				Options: outcomes,
				Default: canonical(defaults.Outcome, market.ParseOutcome, outcomes),
			},
		},
		{
			Name:     "payout",
			Prompt:   &survey.Input{Message: "Payout %:", Default: defaults.Payout},
			Validate: validateNumber,
		},
		{
			Name: "emotion",
			Prompt: &survey.Select{
				Message: "Emotion:",
				Options: emotions,
				Default: canonical(defaults.Emotion, market.ParseEmotion, emotions),
			},
		},
		{
			Name:   "notes",
			Prompt: &survey.Input{Message: "Notes:", Default: defaults.Notes},
		},
	}

	answers := struct {
		Asset     string `survey:"asset"`
		Timeframe string `survey:"timeframe"`
		Amount    string `survey:"amount"`
		Direction string `survey:"direction"`
		Outcome   string `survey:"outcome"`
		Payout    string `survey:"payout"`
		Emotion   string `survey:"emotion"`
		Notes     string `survey:"notes"`
	}{}

	if err := survey.Ask(qs, &answers); err != nil {
		return journal.TradeInput{}, err
	}

	return journal.TradeInput{
		Asset:     answers.Asset,
		Timeframe: answers.Timeframe,
		Amount:    answers.Amount,
		Direction: answers.Direction,
		Outcome:   answers.Outcome,
		Payout:    answers.Payout,
		Emotion:   answers.Emotion,
		Notes:     answers.Notes,
	}, nil
}
