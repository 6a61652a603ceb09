package constants

// Pilihan kelas yang diterima (urutan = urutan di form)
var GradeOptions = []string{"Mont", "L-KG", "U-KG", "1", "2", "3", "4", "5", "6", "7", "8", "9", "10"}

var GenderOptions = []string{"male", "female"}

const (
	DefaultCurrency = "INR"

	// Cookie slot untuk draft registrasi (satu per sesi browser)
	DraftCookieName = "pendingRegistration"
)

func IsValidGrade(g string) bool { return contains(GradeOptions, g) }

func IsValidGender(g string) bool { return contains(GenderOptions, g) }

func contains(opts []string, v string) bool {
	for _, o := range opts {
		if o == v {
			return true
		}
	}
	return false
}
