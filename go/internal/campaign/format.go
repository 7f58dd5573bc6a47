package campaign

import (
	"math"
	"strconv"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/vivekstills/boat/go/internal/models"
)

// EmptyName is shown for an unclaimed position
const EmptyName = "---"

// runnersUpLimit is how many positions below the podium show when collapsed
const runnersUpLimit = 7

// FormatCurrency renders whole US dollars with thousands separators, e.g. $12,500
func FormatCurrency(amount float64) string {
	p := message.NewPrinter(language.AmericanEnglish)
	rounded := math.Round(amount)
	if rounded < 0 {
		return p.Sprintf("-$%.0f", -rounded)
	}
	return p.Sprintf("$%.0f", rounded)
}

// FormatRank zero-pads single digit ranks
func FormatRank(rank int) string {
	if rank >= 0 && rank < 10 {
		return "0" + strconv.Itoa(rank)
	}
	return strconv.Itoa(rank)
}

// MaskUsername returns the display form of a username
func MaskUsername(name string) string {
	if name == "" {
		return EmptyName
	}
	return name
}

// Board is a ranked list split the way it is drawn
type Board struct {
	Podium    []models.Player
	RunnersUp []models.Player
	Hidden    int // runners-up left out by the collapsed view
}

// SplitBoard puts ranks 1-3 on the podium and the rest below it, capped unless showAll
func SplitBoard(players []models.Player, showAll bool) Board {
	var board Board
	for _, p := range players {
		if p.Rank <= 3 {
			board.Podium = append(board.Podium, p)
		} else {
			board.RunnersUp = append(board.RunnersUp, p)
		}
	}

	if !showAll && len(board.RunnersUp) > runnersUpLimit {
		board.Hidden = len(board.RunnersUp) - runnersUpLimit
		board.RunnersUp = board.RunnersUp[:runnersUpLimit]
	}
	return board
}
