package hardware

import (
	"encoding/binary"
	"unsafe"

	"github.com/pkg/errors"
	"golang.org/x/sys/unix"
)

// cros_ec character device interface, see include/uapi/linux/cros_ec_dev.h.
const (
	crosECDevice = "dev/cros_ec"

	// crosECHeaderSize is sizeof(struct cros_ec_command_v2) without data:
	// version, command, outsize, insize and result, each a u32.
	crosECHeaderSize = 20
	// crosECIocXCmdV2 is _IOWR(0xEC, 0, struct cros_ec_command_v2).
	crosECIocXCmdV2 = 0xC0000000 | crosECHeaderSize<<16 | 0xEC<<8

	// ecCmdPrivacySwitches is the Framework EC host command reporting the
	// microphone and camera switch positions.
	ecCmdPrivacySwitches = 0x3E14
)

// ecCommand runs one EC host command with no request payload and returns
// insize bytes of response.
func (d *Sysfs) ecCommand(command uint32, insize int) ([]byte, error) {
	fd, err := unix.Open(d.path(crosECDevice), unix.O_RDWR|unix.O_CLOEXEC, 0)
	if err != nil {
		return nil, errors.Wrap(err, "open cros_ec")
	}
	defer unix.Close(fd)

	buf := encodeECCommand(command, insize)
	if _, _, errno := unix.Syscall(unix.SYS_IOCTL, uintptr(fd), crosECIocXCmdV2, uintptr(unsafe.Pointer(&buf[0]))); errno != 0 {
		return nil, errors.Wrapf(errno, "ec command %#x", command)
	}
	return decodeECResponse(command, buf, insize)
}

func encodeECCommand(command uint32, insize int) []byte {
	buf := make([]byte, crosECHeaderSize+insize)
	binary.NativeEndian.PutUint32(buf[4:], command)
	binary.NativeEndian.PutUint32(buf[12:], uint32(insize))
	return buf
}

// decodeECResponse checks the EC result code and returns the payload.
func decodeECResponse(command uint32, buf []byte, insize int) ([]byte, error) {
	if len(buf) < crosECHeaderSize+insize {
		return nil, errors.Errorf("ec command %#x: short response", command)
	}
	if result := binary.NativeEndian.Uint32(buf[16:]); result != 0 {
		return nil, errors.Errorf("ec command %#x: result %d", command, result)
	}
	return buf[crosECHeaderSize : crosECHeaderSize+insize], nil
}

// readECPrivacy asks the EC for the privacy switch positions.
func (d *Sysfs) readECPrivacy() (microphone, camera bool, err error) {
	data, err := d.ecCommand(ecCmdPrivacySwitches, 2)
	if err != nil {
		return false, false, err
	}
	return data[0] != 0, data[1] != 0, nil
}
