// Package kyc 出资KYC签名校验
//
// 销售的 KycAuthority 非零时，每笔出资都必须附带该地址对出资摘要的
// secp256k1 可恢复签名。摘要绑定出资人此前在该资产上的累计出资，
// 同一签名无法被重复使用。
package kyc

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/holiman/uint256"

	"github.com/weisyn/contributor/pkg/types"
)

// SignatureLength r || s || v
const SignatureLength = crypto.SignatureLength

// Digest 计算出资摘要
// keccak256(saleId | assetIndex | amount | buyer | priorContribution)
func Digest(saleID types.SaleID, assetIndex uint8, amount *uint256.Int, buyer types.Address32, prior *uint256.Int) common.Hash {
	amountBytes := orZero(amount).Bytes32()
	priorBytes := orZero(prior).Bytes32()
	return crypto.Keccak256Hash(
		saleID[:],
		[]byte{assetIndex},
		amountBytes[:],
		buyer[:],
		priorBytes[:],
	)
}

// Verify 校验签名是否由 authority 签发
func Verify(authority common.Address, digest common.Hash, signature []byte) error {
	if len(signature) != SignatureLength {
		return types.ErrInvalidKycSignature.WithDetail("签名长度%d", len(signature))
	}
	sig := make([]byte, SignatureLength)
	copy(sig, signature)
	// 兼容 27/28 形式的恢复位
	if sig[64] >= 27 {
		sig[64] -= 27
	}
	if sig[64] > 1 {
		return types.ErrInvalidKycSignature.WithDetail("恢复位%d无效", signature[64])
	}

	pub, err := crypto.SigToPub(digest.Bytes(), sig)
	if err != nil {
		return types.ErrInvalidKycSignature.WithDetail("%v", err)
	}
	if crypto.PubkeyToAddress(*pub) != authority {
		return types.ErrInvalidKycSignature.WithDetail("签名者不是KYC授权方")
	}
	return nil
}

// VerifyContribution 按销售配置校验出资签名，未启用KYC时直接通过
func VerifyContribution(sale *types.Sale, assetIndex uint8, amount *uint256.Int, buyer types.Address32, prior *uint256.Int, signature []byte) error {
	if !sale.KycEnabled() {
		return nil
	}
	return Verify(sale.KycAuthority, Digest(sale.ID, assetIndex, amount, buyer, prior), signature)
}

func orZero(v *uint256.Int) *uint256.Int {
	if v == nil {
		return new(uint256.Int)
	}
	return v
}
