package widget

import "strings"

// Rule maps a keyword set to a canned answer.
type Rule struct {
	Name     string
	Keywords []string
	Answer   string
}

// Rules is a priority list: earlier rules win when several match.
type Rules []Rule

// Match lower-cases text and returns the first rule with a keyword contained in it.
func (rs Rules) Match(text string) (Rule, bool) {
	lower := strings.ToLower(text)
	for _, r := range rs {
		for _, kw := range r.Keywords {
			if strings.Contains(lower, kw) {
				return r, true
			}
		}
	}
	return Rule{}, false
}

// Canned answers for the dental clinic widget.
const (
	AnswerTimings  = "Dr. Kalra's Dental and Skin Clinic is open Monday through Saturday from 10:30 AM to 1:30 PM and 5:30 PM to 8:30 PM. Sundays are by appointment only."
	AnswerLocation = "We are located at C-43, Jangpura Extension, New Delhi. Our clinic is conveniently situated directly opposite Kashmiri Park and Prarambh Play School."
	AnswerBooking  = "To schedule an appointment, you can call us directly at +91 97171 55497 or book online via Practo. We also accommodate walk-ins when possible."
	AnswerServices = "Our multi-specialty clinic offers Dental Implants, Cosmetic Dentistry, Root Canal Treatment, Teeth Whitening, and Clinical Skin Care. Which service would you like to know more about?"
	AnswerPain     = `We specialize in providing "apprehension-free" and painless experiences using advanced anesthesia and gentle clinical techniques to ensure your absolute comfort.`
	AnswerCost     = "Treatment costs vary depending on the specific procedure and your unique needs. We recommend a clinical consultation with Dr. Kalra for a detailed treatment plan and estimate."
	AnswerStaff    = "The clinic is led by Dr. Jasneet Singh Kalra, a specialist Implantologist and Cosmetic Surgeon, dedicated to providing high-quality dental and skin care since 2014."
)

// DefaultRules returns the clinic rules in priority order:
// timings, location, booking, services, pain/anxiety, cost, staff identity.
// "Can I book a service?" therefore resolves to booking.
func DefaultRules() Rules {
	return Rules{
		{Name: "timings", Keywords: []string{"timing", "open", "hours", "schedule"}, Answer: AnswerTimings},
		{Name: "location", Keywords: []string{"location", "where", "address", "landmark", "find you"}, Answer: AnswerLocation},
		{Name: "booking", Keywords: []string{"book", "appointment"}, Answer: AnswerBooking},
		{Name: "services", Keywords: []string{"service", "treatments", "specialty"}, Answer: AnswerServices},
		{Name: "pain", Keywords: []string{"pain", "hurt", "fear", "scared"}, Answer: AnswerPain},
		{Name: "cost", Keywords: []string{"cost", "price"}, Answer: AnswerCost},
		{Name: "staff", Keywords: []string{"dr. kalra", "doctor", "jasneet"}, Answer: AnswerStaff},
	}
}
