package raster

import "testing"

func TestPixelConverterGrayToRGBBroadcasts(t *testing.T) {
	gray := uniformImage(42, 2, 2, 1)
	c, err := NewPixelConverter(gray, ConvertGrayToRGB)
	if err != nil {
		t.Fatal(err)
	}
	if c.Channels() != 3 {
		t.Fatalf("expected 3 channels, got %d", c.Channels())
	}
	buf := make([]uint8, 2*3)
	if err := c.GetLineU8(buf, 0); err != nil {
		t.Fatal(err)
	}
	for _, v := range buf {
		if v != 42 {
			t.Fatalf("expected all samples 42, got %v", buf)
		}
	}
}

func TestPixelConverterAddOpaqueAlpha(t *testing.T) {
	rgb := uniformImage(10, 1, 1, 3)
	c, err := NewPixelConverter(rgb, ConvertAddOpaqueAlpha)
	if err != nil {
		t.Fatal(err)
	}
	buf := make([]uint8, 4)
	if err := c.GetLineU8(buf, 0); err != nil {
		t.Fatal(err)
	}
	if buf[3] != 255 {
		t.Fatalf("expected opaque alpha 255, got %d", buf[3])
	}
	for _, v := range buf[:3] {
		if v != 10 {
			t.Fatalf("expected RGB carried through, got %v", buf)
		}
	}
}

func TestPixelConverterDropAlpha(t *testing.T) {
	rgba := uniformImage(7, 1, 1, 4)
	c, err := NewPixelConverter(rgba, ConvertDropAlpha)
	if err != nil {
		t.Fatal(err)
	}
	if c.Channels() != 3 {
		t.Fatalf("expected 3 channels, got %d", c.Channels())
	}
	buf := make([]uint8, 3)
	if err := c.GetLineU8(buf, 0); err != nil {
		t.Fatal(err)
	}
	for _, v := range buf {
		if v != 7 {
			t.Fatalf("expected RGB carried through, got %v", buf)
		}
	}
}

func TestPixelConverterRejectsMismatchedChannelCount(t *testing.T) {
	rgb := uniformImage(1, 1, 1, 3)
	if _, err := NewPixelConverter(rgb, ConvertGrayToRGB); err == nil {
		t.Fatal("expected rejection of 3-channel source for GrayToRGB")
	}
}

func TestPixelConverterDelegatesMask(t *testing.T) {
	gray := uniformImage(1, 1, 1, 1).WithMask(uniformImage(255, 1, 1, 1))
	c, err := NewPixelConverter(gray, ConvertGrayToRGB)
	if err != nil {
		t.Fatal(err)
	}
	if c.Mask() == nil {
		t.Fatal("expected mask to be delegated from source")
	}
}
