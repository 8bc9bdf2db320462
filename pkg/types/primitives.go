package types

import (
	"bytes"
	"fmt"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/mr-tron/base58"
)

// ==================== 跨链基础标识 ====================

// ChainID 跨链传输层使用的链标识（u16）
type ChainID uint16

// SaleID 全局唯一的销售标识（32字节）
type SaleID [32]byte

// Address32 跨链通用地址（32字节，不透明标识）
type Address32 [32]byte

// ZeroAddress32 全零地址
var ZeroAddress32 Address32

// Hex 返回0x前缀的十六进制表示
func (id SaleID) Hex() string { return hexutil.Encode(id[:]) }

// String 实现fmt.Stringer
func (id SaleID) String() string { return id.Hex() }

// IsZero 是否为全零
func (id SaleID) IsZero() bool { return id == SaleID{} }

// MarshalText 以十六进制编码
func (id SaleID) MarshalText() ([]byte, error) {
	return []byte(id.Hex()), nil
}

// UnmarshalText 解析十六进制编码
func (id *SaleID) UnmarshalText(text []byte) error {
	b, err := decodeFixedHex(string(text), len(id))
	if err != nil {
		return fmt.Errorf("无效的销售ID: %w", err)
	}
	copy(id[:], b)
	return nil
}

// Hex 返回0x前缀的十六进制表示
func (a Address32) Hex() string { return hexutil.Encode(a[:]) }

// String 实现fmt.Stringer
func (a Address32) String() string { return a.Hex() }

// IsZero 是否为全零地址
func (a Address32) IsZero() bool { return a == ZeroAddress32 }

// Equal 比较两个地址
func (a Address32) Equal(other Address32) bool { return bytes.Equal(a[:], other[:]) }

// MarshalText 以十六进制编码
func (a Address32) MarshalText() ([]byte, error) {
	return []byte(a.Hex()), nil
}

// Base58 返回base58表示（Solana等链的公钥写法）
func (a Address32) Base58() string { return base58.Encode(a[:]) }

// UnmarshalText 解析十六进制或base58编码
//
// 带0x前缀的输入只按十六进制解析；无前缀时先尝试十六进制，再尝试base58。
func (a *Address32) UnmarshalText(text []byte) error {
	s := string(text)
	b, err := decodeFixedHex(s, len(a))
	if err != nil {
		if hasHexPrefix(s) {
			return fmt.Errorf("无效的32字节地址: %w", err)
		}
		raw, berr := base58.Decode(s)
		if berr != nil || len(raw) != len(a) {
			return fmt.Errorf("无效的32字节地址: %w", err)
		}
		b = raw
	}
	copy(a[:], b)
	return nil
}

// ParseSaleID 从十六进制字符串解析销售ID
func ParseSaleID(s string) (SaleID, error) {
	var id SaleID
	err := id.UnmarshalText([]byte(s))
	return id, err
}

// ParseAddress32 从十六进制或base58字符串解析32字节地址
func ParseAddress32(s string) (Address32, error) {
	var a Address32
	err := a.UnmarshalText([]byte(s))
	return a, err
}

// decodeFixedHex 解析定长十六进制，允许省略0x前缀
func decodeFixedHex(s string, size int) ([]byte, error) {
	if !hasHexPrefix(s) {
		s = "0x" + s
	}
	b, err := hexutil.Decode(s)
	if err != nil {
		return nil, err
	}
	if len(b) != size {
		return nil, fmt.Errorf("长度应为%d字节，实际%d字节", size, len(b))
	}
	return b, nil
}

func hasHexPrefix(s string) bool {
	return len(s) >= 2 && (s[:2] == "0x" || s[:2] == "0X")
}

// AssetID 资产标识：所在链 + 链上地址
type AssetID struct {
	Chain   ChainID   `json:"chain"`
	Address Address32 `json:"address"`
}

// String 实现fmt.Stringer
func (a AssetID) String() string {
	return fmt.Sprintf("%d:%s", a.Chain, a.Address.Hex())
}
