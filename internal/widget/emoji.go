package widget

import "regexp"

// Emoticons, misc symbols and pictographs, transport, misc symbols,
// dingbats, supplemental symbols, regional indicator flags.
var emojiPattern = regexp.MustCompile(`[\x{1F600}-\x{1F64F}\x{1F300}-\x{1F5FF}\x{1F680}-\x{1F6FF}\x{2600}-\x{26FF}\x{2700}-\x{27BF}\x{1F900}-\x{1F9FF}\x{1F1E6}-\x{1F1FF}]`)

// StripEmoji removes emoji code points and leaves every other character as is.
func StripEmoji(s string) string {
	return emojiPattern.ReplaceAllString(s, "")
}
