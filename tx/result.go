// Copyright 2026 The go-helioledger Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package tx

import "fmt"

// Result is the outcome code of a transaction. Codes fall into
// numeric bands that determine how the engine treats the outcome:
//
//	-399..-300  local     rejected by this node, not by protocol rules
//	-299..-200  malformed structurally invalid regardless of ledger state
//	-199..-100  failure   invalid against this ledger, never retryable
//	 -99..  -1  retry     resubmit against a later ledger
//	         0  success
//	 100.. 255  claimed   effects discarded but the fee is kept
//
// The band, not the individual code, is consensus-relevant.
type Result int16

const (
	// Local codes.
	LocalError          Result = -399
	InsufficientFeePaid Result = -394

	// Malformed codes.
	Malformed      Result = -299
	BadFee         Result = -298
	BadSource      Result = -297
	BadSignature   Result = -296
	BadSignerOrder Result = -295
	BadAmount      Result = -294
	RedundantTx    Result = -293
	InvalidFlag    Result = -292
	UnknownTxType  Result = -291
	InvalidTx      Result = -290

	// Failure codes.
	AlreadyApplied          Result = -199
	PastSequence            Result = -198
	WrongPriorTransaction   Result = -197
	MasterKeyDisabled       Result = -196
	NotAuthorized           Result = -195
	NoAuthMethod            Result = -194
	NotMultiSigningAccount  Result = -193
	SignerNotInList         Result = -192
	QuorumNotMet            Result = -191
	LastLedgerExceeded      Result = -190
	TicketNotFound          Result = -189
	TooBig                  Result = -188
	InternalError           Result = -187
	BadLedger               Result = -186
	InsufficientBalanceFeeC Result = -185
	InvariantFailedFatal    Result = -184

	// Retry codes.
	Retry                  Result = -99
	FutureSequence         Result = -98
	AccountNotFound        Result = -97
	FutureTicket           Result = -96
	InsufficientBalanceFee Result = -95

	Success Result = 0

	// Claimed-fee codes.
	ClaimedFee           Result = 100
	Unfunded             Result = 101
	InsufficientReserve  Result = 102
	DestinationNotFound  Result = 103
	DestinationTagNeeded Result = 104
	NoPermission         Result = 105
	NoEntry              Result = 106
	HasObligations       Result = 107
	TooSoon              Result = 108
	DirectoryFull        Result = 109
	Oversize             Result = 110
	Killed               Result = 111
	InvariantFailed      Result = 112
	Duplicate            Result = 113
)

// IsSuccess reports full success.
func (r Result) IsSuccess() bool {
	return r == Success
}

// IsTecClaim reports the claimed-fee band: the transaction failed but
// still burns its fee and consumes its sequence.
func (r Result) IsTecClaim() bool {
	return r >= 100 && r <= 255
}

// Applied reports whether the outcome leaves a trace in the ledger,
// either full effects or a claimed fee.
func (r Result) Applied() bool {
	return r.IsSuccess() || r.IsTecClaim()
}

// IsMalformed reports structural invalidity independent of any ledger.
func (r Result) IsMalformed() bool {
	return r <= -200 && r > -300
}

// IsHard reports a terminal failure against the current ledger.
func (r Result) IsHard() bool {
	return r <= -100 && r > -200
}

// IsRetry reports that resubmission against a later ledger may
// succeed.
func (r Result) IsRetry() bool {
	return r < 0 && r > -100
}

// IsLocal reports a node-local rejection.
func (r Result) IsLocal() bool {
	return r <= -300 && r > -400
}

func (r Result) String() string {
	switch r {
	case LocalError:
		return "LocalError"
	case InsufficientFeePaid:
		return "InsufficientFeePaid"
	case Malformed:
		return "Malformed"
	case BadFee:
		return "BadFee"
	case BadSource:
		return "BadSource"
	case BadSignature:
		return "BadSignature"
	case BadSignerOrder:
		return "BadSignerOrder"
	case BadAmount:
		return "BadAmount"
	case RedundantTx:
		return "RedundantTx"
	case InvalidFlag:
		return "InvalidFlag"
	case UnknownTxType:
		return "UnknownTxType"
	case InvalidTx:
		return "InvalidTx"
	case AlreadyApplied:
		return "AlreadyApplied"
	case PastSequence:
		return "PastSequence"
	case WrongPriorTransaction:
		return "WrongPriorTransaction"
	case MasterKeyDisabled:
		return "MasterKeyDisabled"
	case NotAuthorized:
		return "NotAuthorized"
	case NoAuthMethod:
		return "NoAuthMethod"
	case NotMultiSigningAccount:
		return "NotMultiSigningAccount"
	case SignerNotInList:
		return "SignerNotInList"
	case QuorumNotMet:
		return "QuorumNotMet"
	case LastLedgerExceeded:
		return "LastLedgerExceeded"
	case TicketNotFound:
		return "TicketNotFound"
	case TooBig:
		return "TooBig"
	case InternalError:
		return "InternalError"
	case BadLedger:
		return "BadLedger"
	case InsufficientBalanceFeeC:
		return "InsufficientBalanceFeeC"
	case InvariantFailedFatal:
		return "InvariantFailedFatal"
	case Retry:
		return "Retry"
	case FutureSequence:
		return "FutureSequence"
	case AccountNotFound:
		return "AccountNotFound"
	case FutureTicket:
		return "FutureTicket"
	case InsufficientBalanceFee:
		return "InsufficientBalanceFee"
	case Success:
		return "Success"
	case ClaimedFee:
		return "ClaimedFee"
	case Unfunded:
		return "Unfunded"
	case InsufficientReserve:
		return "InsufficientReserve"
	case DestinationNotFound:
		return "DestinationNotFound"
	case DestinationTagNeeded:
		return "DestinationTagNeeded"
	case NoPermission:
		return "NoPermission"
	case NoEntry:
		return "NoEntry"
	case HasObligations:
		return "HasObligations"
	case TooSoon:
		return "TooSoon"
	case DirectoryFull:
		return "DirectoryFull"
	case Oversize:
		return "Oversize"
	case Killed:
		return "Killed"
	case InvariantFailed:
		return "InvariantFailed"
	case Duplicate:
		return "Duplicate"
	}
	return fmt.Sprintf("Result(%d)", int16(r))
}
