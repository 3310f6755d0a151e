package i18n

var defaultTable = map[string]map[string]string{
	"nav.victim":    {English: "Victim Dashboard", Hindi: "पीड़ित डैशबोर्ड"},
	"nav.volunteer": {English: "Volunteer Dashboard", Hindi: "स्वयंसेवक डैशबोर्ड"},
	"nav.admin":     {English: "NGO Admin", Hindi: "एनजीओ एडमिन"},

	"sos.title":       {English: "🚨 EMERGENCY SOS ALERT", Hindi: "🚨 आपातकालीन SOS अलर्ट"},
	"sos.description": {English: "Emergency assistance needed immediately at current location", Hindi: "वर्तमान स्थान पर तुरंत आपातकालीन सहायता की आवश्यकता है"},
	"sos.location":    {English: "Current Location", Hindi: "वर्तमान स्थान"},
	"sos.demoUser":    {English: "Demo User"},

	"error.addRequest":      {English: "Failed to add request", Hindi: "अनुरोध जोड़ने में विफल"},
	"error.updateRequest":   {English: "Failed to update request", Hindi: "अनुरोध अपडेट करने में विफल"},
	"error.acceptRequest":   {English: "Failed to accept request", Hindi: "अनुरोध स्वीकार करने में विफल"},
	"error.completeRequest": {English: "Failed to complete request", Hindi: "अनुरोध पूरा करने में विफल"},

	"auth.invalidCredentials": {English: "Invalid credentials. Try: victim@demo.com, volunteer@demo.com, or admin@demo.com with password: demo123"},
	"auth.passwordMismatch":   {English: "Passwords do not match", Hindi: "पासवर्ड मेल नहीं खाते"},
	"auth.signupSuccess":      {English: "Account created successfully! You can now sign in.", Hindi: "खाता सफलतापूर्वक बनाया गया! अब आप साइन इन कर सकते हैं।"},

	"common.notFound":         {English: "Not found", Hindi: "नहीं मिला"},
	"volunteer.acceptRefused": {English: "Request could not be accepted", Hindi: "अनुरोध स्वीकार नहीं किया जा सका"},
}
