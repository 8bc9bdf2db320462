package codec

import (
	"encoding/binary"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
	"github.com/weisyn/contributor/pkg/types"
)

// reader 顺序读取定长字段，调用方预先校验总长度
type reader struct {
	buf []byte
	off int
}

func (r *reader) next(n int) []byte {
	b := r.buf[r.off : r.off+n]
	r.off += n
	return b
}

func (r *reader) u8() uint8 { return r.next(1)[0] }

func (r *reader) chain() types.ChainID {
	return types.ChainID(binary.BigEndian.Uint16(r.next(chainSize)))
}

func (r *reader) u128() *uint256.Int { return new(uint256.Int).SetBytes(r.next(u128Size)) }

func (r *reader) u256() *uint256.Int { return new(uint256.Int).SetBytes(r.next(u256Size)) }

func (r *reader) addr() (a types.Address32) {
	copy(a[:], r.next(addrSize))
	return a
}

func (r *reader) saleID() (id types.SaleID) {
	copy(id[:], r.next(saleIDSize))
	return id
}

func (r *reader) kyc() common.Address {
	return common.BytesToAddress(r.next(kycSize))
}

// writer 顺序写入定长字段
type writer struct {
	buf []byte
}

func newWriter(size int) *writer { return &writer{buf: make([]byte, 0, size)} }

func (w *writer) u8(v uint8) { w.buf = append(w.buf, v) }

func (w *writer) chain(c types.ChainID) {
	w.buf = binary.BigEndian.AppendUint16(w.buf, uint16(c))
}

// u128 写入低128位，调用方保证不溢出
func (w *writer) u128(v *uint256.Int) {
	b := amountOrZero(v).Bytes32()
	w.buf = append(w.buf, b[u256Size-u128Size:]...)
}

func (w *writer) u256(v *uint256.Int) {
	b := amountOrZero(v).Bytes32()
	w.buf = append(w.buf, b[:]...)
}

func (w *writer) addr(a types.Address32) { w.buf = append(w.buf, a[:]...) }

func (w *writer) saleID(id types.SaleID) { w.buf = append(w.buf, id[:]...) }

func (w *writer) kyc(a common.Address) { w.buf = append(w.buf, a.Bytes()...) }

func amountOrZero(v *uint256.Int) *uint256.Int {
	if v == nil {
		return new(uint256.Int)
	}
	return v
}
