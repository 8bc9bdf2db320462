package repository

import (
	"github.com/weisyn/contributor/pkg/types"
)

// 键布局
//
//	sale/<saleId>                 销售
//	buyer/<saleId>/<owner>        出资记录
//	custodian                     托管方
const (
	salePrefix   = "sale/"
	buyerPrefix  = "buyer/"
	custodianKey = "custodian"
)

// SaleKey 销售记录的存储键
func SaleKey(id types.SaleID) []byte {
	return []byte(salePrefix + id.Hex())
}

// BuyerKey 出资记录的存储键
func BuyerKey(id types.SaleID, owner types.Address32) []byte {
	return []byte(buyerPrefix + id.Hex() + "/" + owner.Hex())
}

// BuyerPrefix 某个销售下全部出资记录的键前缀
func BuyerPrefix(id types.SaleID) []byte {
	return []byte(buyerPrefix + id.Hex() + "/")
}

// CustodianKey 托管方记录的存储键
func CustodianKey() []byte {
	return []byte(custodianKey)
}
