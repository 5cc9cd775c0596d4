package main

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"

	"kalimat/internal/catalog"
	"kalimat/internal/game"
)

// homeHandler describes the service and its endpoints.
func (app *App) homeHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"name":       "kalimat",
		"message":    "اسحب الكلمات إلى الفئة الصحيحة!",
		"categories": len(app.Catalog.Categories()),
		"modes":      []string{game.ModeClassic.String(), game.ModeTimed.String(), game.ModeEndless.String()},
		"powerUps":   []string{game.PowerUpFreeze.String(), game.PowerUpHint.String(), game.PowerUpDoublePoints.String()},
	})
}

// healthzHandler returns a JSON health check with server stats.
func (app *App) healthzHandler(c *gin.Context) {
	uptime := time.Since(app.StartTime)
	counts := app.Catalog.CountByKind()
	c.JSON(http.StatusOK, gin.H{
		"status":          "ok",
		"env":             map[bool]string{true: "production", false: "development"}[app.IsProduction],
		"words_loaded":    counts[catalog.KindWord],
		"questions":       counts[catalog.KindQuestion],
		"active_sessions": app.Sessions.Len(),
		"uptime":          formatUptime(uptime),
		"timestamp":       time.Now().UTC().Format(time.RFC3339),
	})
}

// catalogHandler lists every category with its levels and how many items
// each level holds. Items themselves are not listed since their category is
// the answer the player has to find.
func (app *App) catalogHandler(c *gin.Context) {
	views := lo.Map(app.Catalog.Categories(), func(cat catalog.Category, _ int) categoryView {
		levels := app.Catalog.Levels(cat.Key)
		counts := lo.Associate(levels, func(level int) (int, int) {
			return level, len(app.Catalog.Targets(cat.Key, level))
		})
		return categoryView{Category: cat, Levels: levels, Items: counts}
	})
	c.JSON(http.StatusOK, gin.H{"categories": views})
}

// stateHandler returns the session's current state.
func (app *App) stateHandler(c *gin.Context) {
	sess, err := app.gameSession(c)
	if err != nil {
		app.sessionError(c, err)
		return
	}
	c.JSON(http.StatusOK, gameResponse{State: publicState(sess.Snapshot())})
}

func (app *App) selectCategoryHandler(c *gin.Context) {
	var req categoryRequest
	if !bindJSON(c, &req) {
		return
	}
	app.dispatch(c, game.SelectCategory{Category: req.Category})
}

// startHandler begins a run. An unknown mode is passed through and ignored
// by the game like any other invalid action.
func (app *App) startHandler(c *gin.Context) {
	var req startRequest
	if c.Request.ContentLength != 0 && !bindJSON(c, &req) {
		return
	}
	mode := game.ModeClassic
	if req.Mode != "" {
		mode, _ = game.ParseMode(req.Mode)
	}
	app.dispatch(c, game.StartGame{Mode: mode, Category: req.Category})
}

func (app *App) correctHandler(c *gin.Context) {
	var req itemRequest
	if !bindJSON(c, &req) {
		return
	}
	app.dispatch(c, game.SubmitCorrect{ItemID: req.ItemID})
}

func (app *App) wrongHandler(c *gin.Context) {
	app.dispatch(c, game.SubmitWrong{})
}

// dropHandler judges a word dropped onto a category zone. A dealt target
// dropped on the active category counts as correct and any other dealt card
// as wrong. Cards that are not dealt or already placed are stale drops from
// an earlier level and change nothing.
func (app *App) dropHandler(c *gin.Context) {
	var req dropRequest
	if !bindJSON(c, &req) {
		return
	}
	app.judge(c, func(st game.State) (game.Action, bool) {
		card, ok := st.Card(req.ItemID)
		if !ok || st.Resolved(card.ID) {
			return nil, false
		}
		if card.Target && req.Category == st.Category {
			return game.SubmitCorrect{ItemID: card.ID}, true
		}
		return game.SubmitWrong{}, true
	})
}

// answerHandler checks a multiple-choice answer. Only a dealt, unanswered
// question is judged; anything else is a stale answer and changes nothing.
func (app *App) answerHandler(c *gin.Context) {
	var req answerRequest
	if !bindJSON(c, &req) {
		return
	}
	item, ok := app.Catalog.Item(req.ItemID)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": ErrorUnknownItem})
		return
	}
	if item.Kind != catalog.KindQuestion {
		c.JSON(http.StatusBadRequest, gin.H{"error": ErrorNotAQuestion})
		return
	}

	app.judge(c, func(st game.State) (game.Action, bool) {
		card, ok := st.Card(item.ID)
		if !ok || !card.Target || st.Resolved(card.ID) {
			return nil, false
		}
		if card.Check(req.ChoiceID) {
			return game.SubmitCorrect{ItemID: card.ID}, true
		}
		return game.SubmitWrong{}, true
	})
}

func (app *App) continueHandler(c *gin.Context) {
	app.dispatch(c, game.ContinueAfterLevel{})
}

func (app *App) powerUpHandler(c *gin.Context) {
	var req powerUpRequest
	if !bindJSON(c, &req) {
		return
	}
	kind, _ := game.ParsePowerUp(req.Kind)
	app.dispatch(c, game.UsePowerUp{Kind: kind})
}

func (app *App) hideFeedbackHandler(c *gin.Context) {
	app.dispatch(c, game.HideFeedback{})
}

// resetHandler returns the session to the start screen. With ?new=1 the old
// session is dropped and a new cookie issued.
func (app *App) resetHandler(c *gin.Context) {
	if c.Query("new") == "1" {
		if old, err := c.Cookie(SessionCookieName); err == nil {
			app.Sessions.Delete(old)
			log.Info().Str("session_id", old).Msg("cleared old session")
		}
		sessionID := app.issueSessionCookie(c)
		sess, _, err := app.Sessions.GetOrCreate(sessionID)
		if err != nil {
			app.sessionError(c, err)
			return
		}
		c.JSON(http.StatusOK, gameResponse{State: publicState(sess.Snapshot()), Changed: true})
		return
	}
	app.dispatch(c, game.ResetGame{})
}

// dispatch applies a to the request's session and writes the result.
func (app *App) dispatch(c *gin.Context, a game.Action) {
	sess, err := app.gameSession(c)
	if err != nil {
		app.sessionError(c, err)
		return
	}
	t := sess.Dispatch(c.Request.Context(), a)
	if !t.Changed {
		log.Debug().Str("session_id", sess.ID).Str("action", a.Name()).Msg("action ignored")
	}
	respond(c, t)
}

// judge picks and applies an action against the session's current state.
func (app *App) judge(c *gin.Context, judge func(game.State) (game.Action, bool)) {
	sess, err := app.gameSession(c)
	if err != nil {
		app.sessionError(c, err)
		return
	}
	t := sess.Judge(c.Request.Context(), judge)
	if !t.Changed {
		log.Debug().Str("session_id", sess.ID).Str("path", c.Request.URL.Path).Msg("stale item ignored")
	}
	respond(c, t)
}

func (app *App) sessionError(c *gin.Context, err error) {
	log.Error().Err(err).Str("request_id", requestID(c)).Msg("session lookup failed")
	c.JSON(http.StatusInternalServerError, gin.H{"error": ErrorSessionFailure})
}

func respond(c *gin.Context, t game.Transition) {
	c.JSON(http.StatusOK, gameResponse{
		State:   publicState(t.State),
		Cue:     t.Cue,
		Changed: t.Changed,
		Points:  t.Points,
		Effect:  t.Effect,
		Reveal:  t.RevealID,
	})
}

// bindJSON decodes the body into req, answering 400 on failure.
func bindJSON(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		log.Warn().Err(err).Str("request_id", requestID(c)).Str("path", c.Request.URL.Path).Msg("bad request body")
		c.JSON(http.StatusBadRequest, gin.H{"error": ErrorBadRequest})
		return false
	}
	return true
}

// publicState projects the state for clients. Dealt cards lose their
// category, level and target flag, and question cards their answer key.
func publicState(s game.State) stateView {
	return stateView{
		State: s,
		Items: lo.Map(s.Items, func(card game.Card, _ int) cardView {
			return cardView{
				ID:         card.ID,
				Kind:       card.Kind,
				Text:       card.Text,
				Difficulty: card.Difficulty,
				Tip:        card.Tip,
				Choices:    hideAnswers(card.Choices),
			}
		}),
	}
}

func hideAnswers(choices []catalog.Choice) []catalog.Choice {
	if len(choices) == 0 {
		return nil
	}
	return lo.Map(choices, func(ch catalog.Choice, _ int) catalog.Choice {
		ch.Correct = false
		return ch
	})
}
