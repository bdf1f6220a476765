// Package contracts carries the deployed Clicker contract surface: address,
// ABI, and the entry points a session policy may allow-list.
package contracts

import (
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
)

// ClickerAddress is the deployed Clicker contract on Abstract testnet.
var ClickerAddress = common.HexToAddress("0x83d3e715a0230BE1A79D327e61cF5A08b7c4dc80")

// Entry points the game delegates to a session key. Signatures, not bare
// names, since selectors are derived from them.
const (
	ClickFunction = "click"
	ResetFunction = "reset"

	ClickSignature = "click()"
	ResetSignature = "reset()"
)

// SessionEntryPoints is the exact allow-list a freshly built session policy
// must contain, never more.
func SessionEntryPoints() []string {
	return []string{ClickSignature, ResetSignature}
}

const clickerABIJSON = `[
	{"type":"constructor","inputs":[],"stateMutability":"nonpayable"},
	{"type":"function","name":"click","inputs":[],"outputs":[],"stateMutability":"nonpayable"},
	{"type":"function","name":"reset","inputs":[],"outputs":[],"stateMutability":"nonpayable"},
	{"type":"function","name":"owner","inputs":[],"outputs":[{"name":"","type":"address"}],"stateMutability":"view"},
	{"type":"function","name":"totalClicks","inputs":[],"outputs":[{"name":"","type":"uint256"}],"stateMutability":"view"},
	{"type":"function","name":"userClicks","inputs":[{"name":"","type":"address"}],"outputs":[{"name":"","type":"uint256"}],"stateMutability":"view"},
	{"type":"function","name":"getLeaderboard","inputs":[{"name":"n","type":"uint256"}],"outputs":[{"name":"topUsers","type":"address[]"},{"name":"topScores","type":"uint256[]"}],"stateMutability":"view"},
	{"type":"function","name":"getUserRank","inputs":[{"name":"user","type":"address"}],"outputs":[{"name":"rank","type":"uint256"},{"name":"score","type":"uint256"}],"stateMutability":"view"},
	{"type":"function","name":"getTotalUsers","inputs":[],"outputs":[{"name":"","type":"uint256"}],"stateMutability":"view"},
	{"type":"event","name":"Clicked","inputs":[{"name":"user","type":"address","indexed":true},{"name":"userClicks","type":"uint256","indexed":false},{"name":"totalClicks","type":"uint256","indexed":false}],"anonymous":false},
	{"type":"event","name":"Reset","inputs":[],"anonymous":false}
]`

var clickerABI = mustParseABI(clickerABIJSON)

// ClickerABI returns the parsed Clicker contract ABI.
func ClickerABI() abi.ABI {
	return clickerABI
}

func mustParseABI(raw string) abi.ABI {
	parsed, err := abi.JSON(strings.NewReader(raw))
	if err != nil {
		panic("invalid clicker ABI: " + err.Error())
	}
	return parsed
}
