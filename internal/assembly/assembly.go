// Package assembly turns questionnaire answers into a raw survey record.
package assembly

import (
	"math"

	"skinrisk/domain/survey"
)

// MaxSurveyAge is the top code of _AGE80. The survey records every
// respondent aged 80 or older as 80, so the classifier never saw a larger
// age. The form accepts up to 99 and ToRawRecord folds the rest into 80.
const MaxSurveyAge = 80

// FormAnswers are the questionnaire answers. Binding tags carry the option
// sets the questionnaire offers.
type FormAnswers struct {
	Sex          int     `json:"sex" binding:"required,oneof=1 2"`
	Age          int     `json:"age" binding:"required,min=18,max=99"`
	Marital      int     `json:"marital" binding:"required,min=1,max=6"`
	Employ       int     `json:"employ" binding:"required,min=1,max=8"`
	WeightKg     float64 `json:"weight_kg" binding:"required,gte=20,lte=200"`
	HeightCm     float64 `json:"height_cm" binding:"required,gte=100,lte=200"`
	GenHealth    int     `json:"genhlth" binding:"required,min=1,max=5"`
	PhysDays     int     `json:"phys14d" binding:"required,min=1,max=3"`
	MentDays     int     `json:"ment14d" binding:"required,min=1,max=3"`
	PoorHealth   *int    `json:"poorhlth" binding:"required,min=0,max=30"`
	Exercise     int     `json:"exercise" binding:"required,oneof=1 2"`
	Smoke100     int     `json:"smoke100" binding:"required,oneof=1 2"`
	HeartDisease int     `json:"heart_disease" binding:"required,oneof=1 2"`
	Asthma       int     `json:"asthma" binding:"required,min=1,max=3"`
	Diabetes     int     `json:"diabetes" binding:"required,min=1,max=4"`
	DiffWalk     int     `json:"diffwalk" binding:"required,oneof=1 2"`
	Arthritis    int     `json:"arthritis" binding:"required,oneof=1 2"`
	Kidney       int     `json:"kidney" binding:"required,oneof=1 2"`
	SkinCancer   int     `json:"skin_cancer" binding:"required,oneof=1 2"`
	OtherCancer  int     `json:"other_cancer" binding:"required,oneof=1 2"`
	Depression   int     `json:"depression" binding:"required,oneof=1 2"`
}

// BMI is weight / height², rounded to 2 decimals. It is NaN when height is
// not positive.
func BMI(weightKg, heightCm float64) float64 {
	if heightCm <= 0 || math.IsNaN(heightCm) {
		return math.NaN()
	}
	m := heightCm / 100
	return math.Round(weightKg/(m*m)*100) / 100
}

// ToRawRecord shapes answers into the survey's raw encoding: BMI is stored
// times 100 like _BMI5, and age is collapsed at 80 like _AGE80. An undefined
// BMI is recorded as missing.
func (a FormAnswers) ToRawRecord() survey.RawRecord {
	age := a.Age
	if age > MaxSurveyAge {
		age = MaxSurveyAge
	}

	raw := survey.RawRecord{
		survey.FieldSex:          number(a.Sex),
		survey.FieldAge:          number(age),
		survey.FieldMarital:      number(a.Marital),
		survey.FieldEmploy:       number(a.Employ),
		survey.FieldBMI:          survey.Number(math.Round(BMI(a.WeightKg, a.HeightCm) * 100)),
		survey.FieldGenHealth:    number(a.GenHealth),
		survey.FieldPhysDays:     number(a.PhysDays),
		survey.FieldMentDays:     number(a.MentDays),
		survey.FieldDepression:   number(a.Depression),
		survey.FieldPoorHealth:   survey.Missing(),
		survey.FieldExercise:     number(a.Exercise),
		survey.FieldSmoke100:     number(a.Smoke100),
		survey.FieldHeartDisease: number(a.HeartDisease),
		survey.FieldAsthma:       number(a.Asthma),
		survey.FieldDiabetes:     number(a.Diabetes),
		survey.FieldDiffWalk:     number(a.DiffWalk),
		survey.FieldArthritis:    number(a.Arthritis),
		survey.FieldKidney:       number(a.Kidney),
		survey.FieldSkinCancer:   number(a.SkinCancer),
		survey.FieldOtherCancer:  number(a.OtherCancer),
	}
	if a.PoorHealth != nil {
		raw[survey.FieldPoorHealth] = number(*a.PoorHealth)
	}
	return raw
}

func number(v int) survey.Value {
	return survey.Number(float64(v))
}
