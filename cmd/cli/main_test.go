package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"skinrisk/domain/survey"
)

func TestRecordInputSetFlags(t *testing.T) {
	in := recordInput{sets: []string{"GENHLTH=8", "BMI_SCALED=2500", " POORHLTH =88"}}
	raw, err := in.read(nil, survey.DefaultSchema())
	require.NoError(t, err)

	assert.True(t, raw[survey.FieldGenHealth].Equal(survey.Number(8)))
	assert.True(t, raw[survey.FieldBMI].Equal(survey.Number(2500)))
	assert.True(t, raw[survey.FieldPoorHealth].Equal(survey.Number(88)))
}

func TestRecordInputFileAndStdin(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rec.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"SEX": 2, "AGE": null}`), 0o644))

	raw, err := (&recordInput{file: path, sets: []string{"SEX=1"}}).read(nil, survey.DefaultSchema())
	require.NoError(t, err)
	assert.True(t, raw[survey.FieldSex].Equal(survey.Number(1)))
	assert.True(t, raw[survey.FieldAge].IsMissing())

	raw, err = (&recordInput{file: "-"}).read(strings.NewReader(`{"GENHLTH": "3"}`), survey.DefaultSchema())
	require.NoError(t, err)
	assert.True(t, raw[survey.FieldGenHealth].Equal(survey.Number(3)))
}

func TestRecordInputPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "export.json")
	doc := `{"respondents": [{"GENHLTH": 1}, {"GENHLTH": 8, "EXERANY2": true, "POORHLTH": "88"}]}`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))

	raw, err := (&recordInput{file: path, path: "respondents.1"}).read(nil, survey.DefaultSchema())
	require.NoError(t, err)
	assert.True(t, raw[survey.FieldGenHealth].Equal(survey.Number(8)))
	assert.True(t, raw[survey.FieldExercise].Equal(survey.Number(1)))
	assert.True(t, raw[survey.FieldPoorHealth].Equal(survey.Number(88)))

	_, err = (&recordInput{file: path, path: "respondents.5"}).read(nil, survey.DefaultSchema())
	assert.ErrorContains(t, err, "not found")

	_, err = (&recordInput{file: path}).read(nil, survey.DefaultSchema())
	assert.ErrorContains(t, err, "not numeric")
}

func TestRecordInputErrors(t *testing.T) {
	_, err := (&recordInput{}).read(nil, survey.DefaultSchema())
	assert.ErrorContains(t, err, "no input")

	_, err = (&recordInput{sets: []string{"GENHLTH"}}).read(nil, survey.DefaultSchema())
	assert.ErrorContains(t, err, "FIELD=VALUE")

	_, err = (&recordInput{sets: []string{"GENHLTH=good"}}).read(nil, survey.DefaultSchema())
	assert.ErrorContains(t, err, "not numeric")

	_, err = (&recordInput{file: "-"}).read(strings.NewReader(`[1, 2]`), survey.DefaultSchema())
	assert.ErrorContains(t, err, "JSON object")

	_, err = (&recordInput{file: "-"}).read(strings.NewReader(`{"SEX": `), survey.DefaultSchema())
	assert.ErrorContains(t, err, "not valid JSON")
}

func TestSchemaCommand(t *testing.T) {
	var out bytes.Buffer
	cmd := newSchemaCmd()
	cmd.SetOut(&out)
	cmd.SetArgs([]string{})
	require.NoError(t, cmd.Execute())

	text := out.String()
	assert.Contains(t, text, "FIELD")
	assert.Contains(t, text, "POORHLTH")
	assert.Contains(t, text, "BMI_SCALED,BMI5")
}

func TestFileExt(t *testing.T) {
	assert.Equal(t, ".xlsx", fileExt("data/responses.xlsx"))
	assert.Equal(t, "", fileExt("data.dir/responses"))
}
