// Package form holds the canonical retiree form schema: the ordered scalar
// field list with labels and sections, and the enumerated file upload slots.
// Both export renderers and the submission handlers consume this single
// table, so the tabular and document views cannot drift apart.
package form

// Section names group fields in the document export.
const (
	SectionPersonal    = "PERSONAL INFORMATION"
	SectionEmployment  = "EMPLOYMENT INFORMATION"
	SectionPension     = "PENSION/BENEFITS INFORMATION"
	SectionAdditional  = "ADDITIONAL INFORMATION"
	SectionDeclaration = "DECLARATION/CONSENT"
	SectionDocuments   = "UPLOADED DOCUMENTS"
)

// MaxFileSize is the per-file upload limit in bytes.
const MaxFileSize = 10 << 20 // 10 MB

// Field describes one scalar form field.
type Field struct {
	Name    string
	Label   string
	Section string
}

// Fields is the ordered canonical scalar field list. The order is the
// column order of the tabular export and the line order inside each
// document export section.
var Fields = []Field{
	{Name: "fullName", Label: "Full Name", Section: SectionPersonal},
	{Name: "dateOfBirth", Label: "Date of Birth", Section: SectionPersonal},
	{Name: "gender", Label: "Gender", Section: SectionPersonal},
	{Name: "nationality", Label: "Nationality", Section: SectionPersonal},
	{Name: "residentialAddress", Label: "Residential Address", Section: SectionPersonal},
	{Name: "phoneNumber", Label: "Phone Number", Section: SectionPersonal},
	{Name: "emailAddress", Label: "Email Address", Section: SectionPersonal},
	{Name: "nextOfKinName", Label: "Next of Kin Name", Section: SectionPersonal},
	{Name: "nextOfKinPhone", Label: "Next of Kin Phone Number", Section: SectionPersonal},
	{Name: "organization", Label: "Organization", Section: SectionEmployment},
	{Name: "jobTitle", Label: "Job Title at Retirement", Section: SectionEmployment},
	{Name: "department", Label: "Department/Unit", Section: SectionEmployment},
	{Name: "dateOfEmployment", Label: "Date of Employment", Section: SectionEmployment},
	{Name: "dateOfRetirement", Label: "Date of Retirement", Section: SectionEmployment},
	{Name: "retirementReason", Label: "Reason for Retirement", Section: SectionEmployment},
	{Name: "lastSalary", Label: "Last Salary", Section: SectionEmployment},
	{Name: "gradeLevel", Label: "Grade Level", Section: SectionEmployment},
	{Name: "pensionNumber", Label: "Pension Number", Section: SectionPension},
	{Name: "bankName", Label: "Bank Name", Section: SectionPension},
	{Name: "accountNumber", Label: "Account Number", Section: SectionPension},
	{Name: "pensionPaymentMode", Label: "Mode of Pension Payment", Section: SectionPension},
	{Name: "preferredCommunication", Label: "Preferred Mode of Communication", Section: SectionAdditional},
	{Name: "healthStatus", Label: "Health Status", Section: SectionAdditional},
	{Name: "additionalComments", Label: "Additional Comments", Section: SectionAdditional},
	{Name: "confirmAccuracy", Label: "Confirmation of Accuracy", Section: SectionDeclaration},
	{Name: "declarationDate", Label: "Declaration Date", Section: SectionDeclaration},
	{Name: "witnessName", Label: "Witness/HR Officer Name", Section: SectionDeclaration},
	{Name: "witnessDate", Label: "Witness/HR Officer Date", Section: SectionDeclaration},
}

// Sections is the fixed section order of the document export.
var Sections = []string{
	SectionPersonal,
	SectionEmployment,
	SectionPension,
	SectionAdditional,
	SectionDeclaration,
}

// FileSlot describes one named upload target.
type FileSlot struct {
	Name     string
	Label    string
	MaxCount int
	// Image slots may be embedded inline in the document export.
	Image bool
}

// FileSlots is the enumerated set of upload slots, in export order.
var FileSlots = []FileSlot{
	{Name: "retirementLetter", Label: "Copy of Retirement Letter / Service Certificate", MaxCount: 1},
	{Name: "birthCertOrId", Label: "Birth Certificate / National ID", MaxCount: 1},
	{Name: "passportPhoto", Label: "Passport Photograph", MaxCount: 1, Image: true},
	{Name: "otherDocuments", Label: "Other Relevant Documents", MaxCount: 20},
	{Name: "declarantSignature", Label: "Declarant Signature", MaxCount: 1, Image: true},
	{Name: "witnessSignature", Label: "Witness / HR Officer Signature", MaxCount: 1, Image: true},
}

var (
	labelByName = map[string]string{}
	slotByName  = map[string]FileSlot{}
)

func init() { //nolint: gochecknoinits
	for _, f := range Fields {
		labelByName[f.Name] = f.Label
	}

	for _, s := range FileSlots {
		slotByName[s.Name] = s
	}
}

// Label returns the display label for a field name. Unknown names fall
// back to the raw name.
func Label(name string) string {
	if l, ok := labelByName[name]; ok {
		return l
	}

	return name
}

// Slot looks up an upload slot by name.
func Slot(name string) (FileSlot, bool) {
	s, ok := slotByName[name]
	return s, ok
}

// SectionFields returns the ordered fields belonging to one section.
func SectionFields(section string) []Field {
	var out []Field

	for _, f := range Fields {
		if f.Section == section {
			out = append(out, f)
		}
	}

	return out
}
