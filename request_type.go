// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

package certmgmt

import "fmt"

// vendorBit marks the private range of request type codes.
const vendorBit uint32 = 0x80000000

// RequestKind is the kind of a request within its range.
type RequestKind uint32

// Standard request kinds.
const (
	KindCertIssue       RequestKind = 0x01
	KindCertRevoke      RequestKind = 0x02
	KindCertSuspend     RequestKind = 0x03
	KindCertResume      RequestKind = 0x04
	KindCertVerify      RequestKind = 0x05
	KindCertNotarize    RequestKind = 0x06
	KindCertUserRecover RequestKind = 0x07
	KindCRLIssue        RequestKind = 0x100
)

// Vendor request kinds.
const (
	// KindCertLookup looks up the certificates of a user.
	KindCertLookup RequestKind = 0
)

// RequestType is either a standard or a vendor request kind. Vendor kinds
// occupy a tag space disjoint from the standard ones.
type RequestType struct {
	vendor bool
	kind   RequestKind
}

// Standard returns a standard request type.
func Standard(kind RequestKind) RequestType {
	return RequestType{kind: kind}
}

// Vendor returns a vendor request type.
func Vendor(kind RequestKind) RequestType {
	return RequestType{vendor: true, kind: kind}
}

// IsVendor reports whether rt is in the vendor range.
func (rt RequestType) IsVendor() bool {
	return rt.vendor
}

// Kind returns the kind within the range.
func (rt RequestType) Kind() RequestKind {
	return rt.kind
}

// Valid reports whether the kind fits below the vendor bit.
func (rt RequestType) Valid() bool {
	return uint32(rt.kind)&vendorBit == 0
}

// Code returns the wire code of rt.
func (rt RequestType) Code() uint32 {
	if rt.vendor {
		return vendorBit | uint32(rt.kind)
	}
	return uint32(rt.kind)
}

// ParseRequestType decodes a wire code.
func ParseRequestType(code uint32) RequestType {
	if code&vendorBit != 0 {
		return Vendor(RequestKind(code &^ vendorBit))
	}
	return Standard(RequestKind(code))
}

func (rt RequestType) String() string {
	if rt.vendor {
		return fmt.Sprintf("vendor(%#x)", uint32(rt.kind))
	}
	return fmt.Sprintf("standard(%#x)", uint32(rt.kind))
}
