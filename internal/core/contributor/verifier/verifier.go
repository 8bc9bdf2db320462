// Package verifier 入站跨链消息校验
//
// 所有指令路径只通过这里接触入站载荷：先确认来源是可信的指挥合约，
// 再确认类型标签，然后一次性解码成带类型的消息。校验本身无副作用，
// 重放保护由调用方依据来源序号完成。
package verifier

import (
	"github.com/weisyn/contributor/internal/core/contributor/codec"
	"github.com/weisyn/contributor/internal/core/contributor/custodian"
	"github.com/weisyn/contributor/pkg/types"
)

// Verifier 消息校验器
type Verifier struct {
	ctx custodian.Context
}

// New 以托管方上下文构造校验器
func New(ctx custodian.Context) *Verifier {
	return &Verifier{ctx: ctx}
}

// Verify 校验并解码入站消息
//
// target 非空时要求载荷中的销售ID与之一致。
func (v *Verifier) Verify(msg *types.InboundMessage, expected types.PayloadID, target *types.Sale) (codec.Message, error) {
	if msg == nil {
		return nil, types.ErrMalformedPayload.WithDetail("消息为空")
	}
	if !v.ctx.IsConductor(msg.Provenance) {
		return nil, types.ErrUntrustedOrigin.WithDetail("chain=%d address=%s",
			msg.Provenance.EmitterChain, msg.Provenance.EmitterAddress.Hex())
	}

	tag, err := codec.PeekPayloadID(msg.Payload)
	if err != nil {
		return nil, err
	}
	if tag != expected {
		return nil, types.ErrUnexpectedMessageType.WithDetail("期望%s，实际%s", expected, tag)
	}

	decoded, err := codec.Decode(msg.Payload)
	if err != nil {
		return nil, err
	}

	if target != nil && decoded.SaleID() != target.ID {
		return nil, types.ErrSaleMismatch.WithDetail("消息=%s 目标=%s", decoded.SaleID().Hex(), target.ID.Hex())
	}
	return decoded, nil
}

// VerifySaleInit 校验销售初始化消息
func (v *Verifier) VerifySaleInit(msg *types.InboundMessage) (*codec.SaleInit, error) {
	m, err := v.Verify(msg, types.PayloadSaleInit, nil)
	if err != nil {
		return nil, err
	}
	return m.(*codec.SaleInit), nil
}

// VerifySaleSealed 校验封存消息
func (v *Verifier) VerifySaleSealed(msg *types.InboundMessage, target *types.Sale) (*codec.SaleSealed, error) {
	m, err := v.Verify(msg, types.PayloadSaleSealed, target)
	if err != nil {
		return nil, err
	}
	return m.(*codec.SaleSealed), nil
}

// VerifySaleAborted 校验中止消息
func (v *Verifier) VerifySaleAborted(msg *types.InboundMessage, target *types.Sale) (*codec.SaleAborted, error) {
	m, err := v.Verify(msg, types.PayloadSaleAborted, target)
	if err != nil {
		return nil, err
	}
	return m.(*codec.SaleAborted), nil
}
