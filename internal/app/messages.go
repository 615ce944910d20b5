package app

import (
	"fmt"
	"strconv"
)

// Message composers for the reminder pipelines. All of them are pure: the
// same inputs always produce byte-identical output, which the listing
// commands and the tests rely on.

// PersonalWishMessage is sent to a list owner on a friend's birthday.
func PersonalWishMessage(name string) string {
	return fmt.Sprintf("🎉 Hey! Today is your friend %s's birthday! Don't forget to wish them a fantastic day! 🎂", name)
}

// PersonalAdvanceMessage is sent to a list owner one or two days ahead.
func PersonalAdvanceMessage(daysLeft int, name string) string {
	if daysLeft == 1 {
		return fmt.Sprintf("🎉 Just a friendly reminder: Tomorrow is your friend %s's birthday! Don't forget to send them your best wishes! 🎈", name)
	}
	return fmt.Sprintf("🎉 Just a friendly reminder: In %s days, it's your friend %s's birthday! Don't forget to send them your best wishes! 🎈", numberWord(daysLeft), name)
}

// GroupWishMessage is posted (and pinned) in the group on the birthday
// itself. taggedName should already carry the @ prefix where resolvable.
func GroupWishMessage(taggedName string) string {
	return fmt.Sprintf("🎂🎉 Happy Birthday, %s! 🎈🥳\n\nMay your special day be filled with love, joy, and unforgettable moments. Wishing you all the happiness in the world on your birthday and always! 🎁🎈", taggedName)
}

// GroupAdvanceMessage is posted in the group one or two days ahead.
func GroupAdvanceMessage(daysLeft int, taggedName string) string {
	return fmt.Sprintf("🎉 Hey everyone, just a reminder: %s day(s) left for %s's birthday! Let's get ready to celebrate together! 🎈🥳", numberWord(daysLeft), taggedName)
}

func numberWord(n int) string {
	switch n {
	case 1:
		return "one"
	case 2:
		return "two"
	default:
		return strconv.Itoa(n)
	}
}
