package ui

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/gomarkdown/markdown"

	"skinrisk/domain/risk"
	"skinrisk/domain/survey"
	"skinrisk/internal/assembly"
	"skinrisk/internal/errors"
)

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"model":  s.service.ModelName(),
	})
}

type fieldResponse struct {
	Field        survey.Field     `json:"field"`
	Aliases      []string         `json:"aliases,omitempty"`
	Description  string           `json:"description,omitempty"`
	Rule         survey.RuleKind  `json:"rule"`
	MissingCodes []float64        `json:"missing_codes,omitempty"`
	Recode       [][2]float64     `json:"recode,omitempty"`
	Keep         *survey.Interval `json:"keep,omitempty"`
	Domain       string           `json:"domain,omitempty"`
}

func (s *Server) handleSchema(c *gin.Context) {
	specs := s.service.Schema().Specs()
	fields := make([]fieldResponse, 0, len(specs))
	for _, spec := range specs {
		fields = append(fields, fieldResponse{
			Field:        spec.Field,
			Aliases:      spec.Aliases,
			Description:  spec.Description,
			Rule:         spec.Rule.Kind,
			MissingCodes: spec.Rule.MissingCodes,
			Recode:       spec.Rule.RecodePairs(),
			Keep:         spec.Rule.Keep,
			Domain:       spec.Domain.String(),
		})
	}
	c.JSON(http.StatusOK, gin.H{"fields": fields, "count": len(fields)})
}

type tierResponse struct {
	Tier         risk.Tier `json:"tier"`
	Label        string    `json:"label"`
	Color        string    `json:"color"`
	MinScore     int       `json:"min_score"`
	MaxScore     int       `json:"max_score"`
	Advisory     string    `json:"advisory"`
	AdvisoryHTML string    `json:"advisory_html"`
}

func newTierResponse(t risk.Tier) tierResponse {
	lo, hi := t.ScoreRange()
	return tierResponse{
		Tier:         t,
		Label:        t.Label(),
		Color:        t.Color(),
		MinScore:     lo,
		MaxScore:     hi,
		Advisory:     t.Advisory(),
		AdvisoryHTML: string(markdown.ToHTML([]byte(t.Advisory()), nil, nil)),
	}
}

func (s *Server) handleTiers(c *gin.Context) {
	tiers := make([]tierResponse, 0, 3)
	for _, t := range risk.Tiers() {
		tiers = append(tiers, newTierResponse(t))
	}
	c.JSON(http.StatusOK, gin.H{
		"tiers":               tiers,
		"recommended_actions": risk.RecommendedActions,
		"disclaimer":          risk.Disclaimer,
	})
}

type assessmentResponse struct {
	*risk.Assessment
	Presentation       tierResponse `json:"presentation"`
	RecommendedActions []string     `json:"recommended_actions"`
	Disclaimer         string       `json:"disclaimer"`
}

func newAssessmentResponse(a *risk.Assessment) assessmentResponse {
	return assessmentResponse{
		Assessment:         a,
		Presentation:       newTierResponse(a.Tier),
		RecommendedActions: risk.RecommendedActions,
		Disclaimer:         risk.Disclaimer,
	}
}

func (s *Server) handleAssess(c *gin.Context) {
	var answers assembly.FormAnswers
	if err := c.ShouldBindJSON(&answers); err != nil {
		respondError(c, errors.InvalidInput("invalid questionnaire answers", err))
		return
	}

	a, err := s.service.Assess(c.Request.Context(), answers)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, newAssessmentResponse(a))
}

func (s *Server) handleAssessRecord(c *gin.Context) {
	raw, err := s.bindRecord(c)
	if err != nil {
		respondError(c, err)
		return
	}

	strict := s.strictInput
	if q := c.Query("strict"); q != "" {
		if strict, err = strconv.ParseBool(q); err != nil {
			respondError(c, errors.InvalidInput("strict must be a boolean", err))
			return
		}
	}

	a, err := s.service.AssessRecord(c.Request.Context(), raw, strict)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, newAssessmentResponse(a))
}

func (s *Server) handleClean(c *gin.Context) {
	raw, err := s.bindRecord(c)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, s.service.Clean(raw))
}

// bindRecord reads a JSON object of field name to value. Names may be the
// canonical field or an alias; null is missing.
func (s *Server) bindRecord(c *gin.Context) (survey.RawRecord, error) {
	var body map[string]interface{}
	if err := c.ShouldBindJSON(&body); err != nil {
		return nil, errors.InvalidInput("record must be a JSON object", err)
	}

	values := make(map[string]survey.Value, len(body))
	for name, v := range body {
		value, ok := s.coercer.CoerceValue(v)
		if !ok {
			return nil, errors.InvalidInput(fmt.Sprintf("field %s is not numeric: %v", name, v), nil)
		}
		values[name] = value
	}
	raw, err := survey.RawRecordFromNames(s.service.Schema(), values)
	if err != nil {
		return nil, errors.InvalidInput("conflicting field names", err)
	}
	return raw, nil
}
