package cardgen

// luhnCheckDigit computes the Luhn check digit over a digit string:
// scanning right to left, every second digit starting with the
// rightmost is doubled (minus 9 when the double exceeds 9), all digits
// are summed, and the check digit is (10 - sum mod 10) mod 10.
func luhnCheckDigit(body string) byte {
	sum, dbl := 0, true
	for i := len(body) - 1; i >= 0; i-- {
		d := int(body[i] - '0')
		if dbl {
			d *= 2
			if d > 9 {
				d -= 9
			}
		}
		sum += d
		dbl = !dbl
	}
	return byte('0' + (10-sum%10)%10)
}

// LuhnValid reports whether a digit string passes the Luhn check.
func LuhnValid(pan string) bool {
	if len(pan) < 2 {
		return false
	}
	for i := 0; i < len(pan); i++ {
		if pan[i] < '0' || pan[i] > '9' {
			return false
		}
	}
	return pan[len(pan)-1] == luhnCheckDigit(pan[:len(pan)-1])
}
