package network

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParsePortsDefaults(t *testing.T) {
	ports, err := parsePorts("")
	require.NoError(t, err)
	require.Equal(t, []int{80, 443}, ports)
}

func TestParsePortsList(t *testing.T) {
	ports, err := parsePorts("22, 80,443")
	require.NoError(t, err)
	require.Equal(t, []int{22, 80, 443}, ports)
}

func TestParsePortsInvalid(t *testing.T) {
	_, err := parsePorts("80,notaport")
	require.Error(t, err)

	_, err = parsePorts("0")
	require.Error(t, err)

	_, err = parsePorts("70000")
	require.Error(t, err)
}

func TestParsePortsTooMany(t *testing.T) {
	_, err := parsePorts("1,2,3,4,5,6,7,8,9,10,11")
	require.Error(t, err)
}

func TestWhoisReferral(t *testing.T) {
	body := "% IANA WHOIS server\n" +
		"domain: COM\n" +
		"whois: whois.verisign-grs.com\n" +
		"status: ACTIVE\n"
	require.Equal(t, "whois.verisign-grs.com", whoisReferral(body))

	require.Empty(t, whoisReferral("domain: COM\nstatus: ACTIVE\n"))
}
