package domain

import "strings"

var (
	gmailDomains   = map[string]bool{"gmail.com": true, "googlemail.com": true}
	icloudDomains  = map[string]bool{"icloud.com": true, "me.com": true}
	outlookDomains = map[string]bool{
		"hotmail.com": true, "hotmail.co.uk": true, "hotmail.fr": true, "hotmail.de": true,
		"live.com": true, "live.co.uk": true, "msn.com": true, "outlook.com": true,
		"outlook.co.uk": true, "passport.com": true, "windowslive.com": true,
	}
	yahooDomains = map[string]bool{
		"yahoo.com": true, "yahoo.co.uk": true, "yahoo.fr": true, "yahoo.de": true,
		"ymail.com": true, "rocketmail.com": true,
	}
	yandexDomains = map[string]bool{
		"yandex.ru": true, "yandex.ua": true, "yandex.kz": true, "yandex.com": true,
		"yandex.by": true, "ya.ru": true,
	}
)

// CanonicalEmail lowercases an address and folds provider aliases:
// gmail drops dots and +tags and moves googlemail.com to gmail.com,
// icloud and outlook family drop +tags, yahoo drops -tags,
// yandex domains collapse to yandex.ru.
// Input without a single @ is only lowercased
func CanonicalEmail(addr string) string {
	addr = strings.ToLower(strings.TrimSpace(addr))
	at := strings.LastIndexByte(addr, '@')
	if at <= 0 || at == len(addr)-1 {
		return addr
	}
	local, host := addr[:at], addr[at+1:]

	switch {
	case gmailDomains[host]:
		local = cutTag(local, '+')
		local = strings.ReplaceAll(local, ".", "")
		host = "gmail.com"
	case icloudDomains[host], outlookDomains[host]:
		local = cutTag(local, '+')
	case yahooDomains[host]:
		local = cutTag(local, '-')
	case yandexDomains[host]:
		host = "yandex.ru"
	}
	if local == "" {
		return addr
	}
	return local + "@" + host
}

func cutTag(local string, sep byte) string {
	if i := strings.IndexByte(local, sep); i >= 0 {
		return local[:i]
	}
	return local
}
