package survey

// Field is a survey column name as the classifier was trained on it
type Field string

// Survey columns. Names follow the BRFSS codebook, including the leading
// underscore on calculated variables.
const (
	FieldSex          Field = "_SEX"
	FieldAge          Field = "_AGE80"
	FieldMarital      Field = "MARITAL"
	FieldEmploy       Field = "EMPLOY1"
	FieldBMI          Field = "_BMI5"
	FieldGenHealth    Field = "GENHLTH"
	FieldPhysDays     Field = "_PHYS14D"
	FieldMentDays     Field = "_MENT14D"
	FieldDepression   Field = "ADDEPEV3"
	FieldPoorHealth   Field = "POORHLTH"
	FieldExercise     Field = "EXERANY2"
	FieldSmoke100     Field = "SMOKE100"
	FieldHeartDisease Field = "CVDCRHD4"
	FieldAsthma       Field = "_ASTHMS1"
	FieldDiabetes     Field = "DIABETE4"
	FieldDiffWalk     Field = "DIFFWALK"
	FieldArthritis    Field = "HAVARTH4"
	FieldKidney       Field = "CHCKDNY2"
	FieldSkinCancer   Field = "CHCSCNC1"
	FieldOtherCancer  Field = "CHCOCNC1"
)

func (f Field) String() string { return string(f) }
