// contributor 跨链代币销售出资方节点
package main

func main() {
	Execute()
}
