package game

import (
	"github.com/atotto/clipboard"
	"go.uber.org/zap"
)

// copyReport puts the match report on the system clipboard.
func (g *Game) copyReport() {
	report := g.match.MatchReport(0)
	if err := clipboard.WriteAll(report); err != nil {
		g.log.Warn("clipboard copy failed", zap.Error(err))
		g.setStatus("clipboard unavailable")
		return
	}
	g.setStatus("match report copied")
}
