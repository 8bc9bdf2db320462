package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/spf13/cobra"

	"github.com/weisyn/contributor/internal/core/contributor/codec"
)

// decodeCmd 解码跨链消息载荷
var decodeCmd = &cobra.Command{
	Use:   "decode <payload-hex>",
	Short: "解码跨链消息载荷并以JSON输出",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runDecode(cmd.OutOrStdout(), args[0])
	},
}

type decodedPayload struct {
	Type    string        `json:"type"`
	Message codec.Message `json:"message"`
}

func runDecode(w io.Writer, payloadHex string) error {
	if len(payloadHex) < 2 || payloadHex[:2] != "0x" {
		payloadHex = "0x" + payloadHex
	}
	payload, err := hexutil.Decode(payloadHex)
	if err != nil {
		return fmt.Errorf("解析十六进制失败: %w", err)
	}
	msg, err := codec.Decode(payload)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(decodedPayload{Type: msg.PayloadID().String(), Message: msg})
}
